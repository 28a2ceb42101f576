package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/washly/app/jobs"
	"github.com/shashiranjanraj/washly/pkg/cache"
	"github.com/shashiranjanraj/washly/pkg/database"
	"github.com/shashiranjanraj/washly/pkg/queue"
)

var queueWorkersFlag int

// washly queue:work — run queue workers in a standalone process. Useful
// when the web process and workers are scaled independently.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue:work needs Redis to share jobs with the web process: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		driver := queue.NewRedisDriver(cache.RDB)
		driver.StartDelayedPromoter(ctx)
		queue.SetDriver(driver)
		queue.UseDB(database.DB)
		jobs.Register()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 4
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 4, "Number of concurrent workers")
}
