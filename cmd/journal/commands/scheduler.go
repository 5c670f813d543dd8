package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/internal/scheduler"
	"github.com/wonny/tradejournal/internal/scheduler/jobs"
	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `행동 분석 다이제스트 스케줄러를 시작하거나 작업을 관리합니다.

등록되는 작업:
- behaviour_digest: DIGEST_SCHEDULE (기본 매일 07:00), DIGEST_ACCOUNTS 계정별

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행 (완료까지 대기)

Example:
  go run ./cmd/journal scheduler start
  go run ./cmd/journal scheduler list
  go run ./cmd/journal scheduler run behaviour_digest`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Trade Journal Scheduler ===")

	sched, closer, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer closer.Close()

	if len(sched.GetAllJobs()) == 0 {
		PrintWarning(cmd.OutOrStdout(), "No jobs registered (set DIGEST_ACCOUNTS)")
		return nil
	}

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, closer, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Registered jobs:")
	for name, stat := range sched.GetJobStats() {
		PrintKeyValue(out, name, stat.Schedule, 18)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Running job: %s\n", jobName)

	sched, closer, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer closer.Close()

	// 프로세스가 바로 종료되므로 동기 실행
	result, err := sched.RunJobSync(jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		PrintError(out, fmt.Sprintf("Job failed after %s: %s", result.Duration, result.Error))
		return fmt.Errorf("job %s failed", jobName)
	}

	PrintSuccess(out, fmt.Sprintf("Job completed in %s", result.Duration))
	return nil
}

func initScheduler() (*scheduler.Scheduler, io.Closer, error) {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Open journal store
	source, closer, err := journal.OpenSource(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal store: %w", err)
	}

	// 4. Service
	service := journal.NewService(source, nil, log.Component("journal"))

	// 5. Create scheduler and register jobs
	sched := scheduler.New(log)
	if err := registerJobs(sched, cfg, service, log); err != nil {
		closer.Close()
		return nil, nil, err
	}

	return sched, closer, nil
}

// registerJobs adds every configured job
func registerJobs(sched *scheduler.Scheduler, cfg *config.Config, analyzer jobs.AdvancedAnalyzer, log *logger.Logger) error {
	if len(cfg.Digest.Accounts) == 0 {
		log.Warn("DIGEST_ACCOUNTS empty, digest job not registered")
		return nil
	}

	digest := jobs.NewDigestJob(analyzer, cfg.Digest.Accounts, cfg.Analytics.DefaultBalance, cfg.Digest.Schedule, log)
	if err := sched.AddJob(digest); err != nil {
		return fmt.Errorf("register %s: %w", digest.Name(), err)
	}
	return nil
}
