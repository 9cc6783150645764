package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/config"
	"github.com/AlzProject/backend/internal/database"
	"github.com/AlzProject/backend/internal/logger"
	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// Seeds a small demo test with one section of every question type so a
// local environment has something to grade.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	testRepo := repository.NewTestRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Println("=== Seeding demo test ===")

	test := &model.Test{
		Title:                "Demo Assessment",
		AllowNegativeMarking: true,
		AllowPartialMarking:  true,
	}
	if err := testRepo.Create(ctx, test); err != nil {
		log.Fatal().Err(err).Msg("Failed to create test")
	}
	fmt.Printf("Created test %s\n", test.ID)

	section := &model.Section{TestID: test.ID, Title: "General", OrderNum: 1}
	if err := testRepo.CreateSection(ctx, section); err != nil {
		log.Fatal().Err(err).Msg("Failed to create section")
	}

	ans := "3.14"
	questions := []struct {
		q       model.Question
		options []model.Option
	}{
		{
			q: model.Question{
				SectionID:     section.ID,
				QuestionText:  "Which planet is closest to the sun?",
				QuestionType:  model.QuestionTypeSingleChoice,
				MaxScore:      decimal.NewFromInt(2),
				NegativeScore: decimal.Zero,
				OrderNum:      1,
			},
			options: []model.Option{
				{OptionText: "Mercury", IsCorrect: true, OrderNum: 1},
				{OptionText: "Venus", OrderNum: 2},
				{OptionText: "Mars", OrderNum: 3},
			},
		},
		{
			q: model.Question{
				SectionID:      section.ID,
				QuestionText:   "Select all prime numbers.",
				QuestionType:   model.QuestionTypeMultiChoice,
				MaxScore:       decimal.NewFromInt(10),
				NegativeScore:  decimal.Zero,
				PartialMarking: true,
				OrderNum:       2,
			},
			options: []model.Option{
				{OptionText: "2", IsCorrect: true, Weight: decimal.RequireFromString("0.6"), OrderNum: 1},
				{OptionText: "7", IsCorrect: true, Weight: decimal.RequireFromString("0.4"), OrderNum: 2},
				{OptionText: "9", OrderNum: 3},
			},
		},
		{
			q: model.Question{
				SectionID:     section.ID,
				QuestionText:  "What is pi, to two decimal places?",
				QuestionType:  model.QuestionTypeNumerical,
				Ans:           &ans,
				MaxScore:      decimal.NewFromInt(3),
				NegativeScore: decimal.NewFromInt(1),
				OrderNum:      3,
			},
		},
		{
			q: model.Question{
				SectionID:     section.ID,
				QuestionText:  "Describe the water cycle.",
				QuestionType:  model.QuestionTypeFreeText,
				MaxScore:      decimal.NewFromInt(5),
				NegativeScore: decimal.Zero,
				OrderNum:      4,
			},
		},
	}

	for i := range questions {
		q := &questions[i].q
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatal().Err(err).Msg("Failed to create question")
		}
		for j := range questions[i].options {
			o := &questions[i].options[j]
			o.QuestionID = q.ID
			if err := questionRepo.CreateOption(ctx, o); err != nil {
				log.Fatal().Err(err).Msg("Failed to create option")
			}
		}
		fmt.Printf("Created %s question %s\n", q.QuestionType, q.ID)
	}

	fmt.Println("=== Done ===")
}
