package main

import (
	"didilikeit/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.LogEntryModel{},
	}

	generator := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	generator.ApplyBasic(models...)

	generator.Execute()
}
