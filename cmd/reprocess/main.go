package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"opina/config"
	"opina/db"
	"opina/internal/alerts"
	"opina/services"
	"opina/utils"

	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	limit      int64
	dryRun     bool
	surveyUUID string
)

var rootCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Re-run sentiment analysis over answered surveys that were never scored",
	Long: `Scans for answered surveys without a sentiment analysis and runs the
hybrid pipeline over each one. Useful after classifier outages or when
answers were imported out of band.

Example:
  reprocess --limit 50
  reprocess --dry-run
  reprocess --survey 6f1d2c3a-...-9e`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "./config/config.yml", "path to config file")
	rootCmd.Flags().Int64Var(&limit, "limit", 0, "max surveys to process (0 = all)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending surveys without scoring them")
	rootCmd.Flags().StringVar(&surveyUUID, "survey", "", "reprocess a single survey by uuid")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret, cfg.JWT.Expiry)
	service := services.InitAnalysisService(cfg)

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := alerts.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, alerts will be email-only: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if surveyUUID != "" {
		return reprocessOne(ctx, service, surveyUUID)
	}

	surveys, err := db.ListUnprocessedSurveys(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list unprocessed surveys: %w", err)
	}
	if len(surveys) == 0 {
		fmt.Println("No pending surveys.")
		return nil
	}

	fmt.Printf("Found %d pending survey(s)\n", len(surveys))
	if dryRun {
		for _, survey := range surveys {
			answeredAt := "?"
			if survey.AnsweredAt != nil {
				answeredAt = survey.AnsweredAt.Format("02/01/2006 15:04")
			}
			fmt.Printf("  %s  %-30s  answered %s\n", survey.UUID, survey.ClientName, answeredAt)
		}
		return nil
	}

	processed, failed := 0, 0
	for i := range surveys {
		survey := surveys[i]
		analysis, err := service.ProcessSurvey(ctx, &survey)
		if err != nil {
			failed++
			log.Printf("Failed to process survey %s: %v", survey.UUID, err)
			continue
		}
		processed++
		fmt.Printf("  %s  sentiment=%s score=%d alert=%v\n",
			survey.UUID, analysis.Sentiment, analysis.HybridScore, analysis.ShouldAlert)
	}

	fmt.Printf("Done: %d processed, %d failed\n", processed, failed)
	return nil
}

func reprocessOne(ctx context.Context, service *services.AnalysisService, uuid string) error {
	survey, err := db.GetSurveyByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if !survey.Answered {
		return fmt.Errorf("survey %s has not been answered yet", uuid)
	}

	if dryRun {
		fmt.Printf("Would reprocess %s (%s)\n", survey.UUID, survey.ClientName)
		return nil
	}

	analysis, err := service.ProcessSurvey(ctx, survey)
	if err != nil {
		return err
	}
	fmt.Printf("%s  sentiment=%s score=%d alert=%v\n",
		survey.UUID, analysis.Sentiment, analysis.HybridScore, analysis.ShouldAlert)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
