package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"didilikeit/config"
	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/errors"
	"didilikeit/internal/infra/auth"
	"didilikeit/internal/infra/qrcode"
	"didilikeit/internal/infra/tablestore/driver"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "didilikeitctl",
		Usage: "Administer a Did I Like It? deployment",
		Commands: []*cli.Command{
			hashPasswordCommand(),
			statsCommand(),
			inviteQRCommand(),
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print a bcrypt hash for auth.credentials[].passwordHash",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password to hash; read from stdin when empty",
			},
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			password := cmd.String("password")
			if password == "" {
				line, err := bufio.NewReader(cmd.Root().Reader).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return errors.Wrap(err, "failed to read password")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password is required")
			}

			hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: int(cmd.Int("cost"))}})
			hash, err := hasher.Hash(password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, hash)

			return errors.WithStack(err)
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print admin statistics read from the configured table store",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var store repository.TableStore
			app := fx.New(
				fx.NopLogger,
				fx.Provide(
					config.New,
					func() *slog.Logger { return slog.New(slog.NewTextHandler(os.Stderr, nil)) },
				),
				driver.Module,
				fx.Populate(&store),
			)
			if err := app.Start(ctx); err != nil {
				return errors.Wrap(err, "failed to open table store")
			}
			defer func() { _ = app.Stop(context.Background()) }()

			return printStats(ctx, store, cmd.Root().Writer)
		},
	}
}

func printStats(ctx context.Context, store repository.TableStore, w io.Writer) error {
	snapshot, err := store.ReadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read table")
	}

	stats := entity.ComputeAdminStats(snapshot.Rows)
	if _, err := fmt.Fprintf(w, "total rows:   %d\nunique users: %d\n", stats.TotalRows, stats.UniqueUsers); err != nil {
		return errors.WithStack(err)
	}
	for _, usage := range stats.Usage {
		if _, err := fmt.Fprintf(w, "%6d  %s\n", usage.Count, usage.Email); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func inviteQRCommand() *cli.Command {
	return &cli.Command{
		Name:  "invite-qr",
		Usage: "Write a PNG QR code of the sign-in link",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "base-url",
				Usage:    "Public URL of the service",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "code",
				Usage: "Invite code to embed in the link",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Image size in pixels",
				Value: 256,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
				Value:   "invite.png",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			svc := qrcode.NewQRCodeService(int(cmd.Int("size")), "M", cmd.String("base-url"))
			png, err := svc.GenerateInviteQR(cmd.String("code"))
			if err != nil {
				return errors.Wrap(err, "failed to generate QR code")
			}

			if err := os.WriteFile(cmd.String("output"), png, 0o600); err != nil {
				return errors.Wrap(err, "failed to write QR code")
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "wrote %s for %s\n", cmd.String("output"), svc.InviteURL(cmd.String("code")))

			return errors.WithStack(err)
		},
	}
}
