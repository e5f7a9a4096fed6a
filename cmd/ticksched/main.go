// Command ticksched drives the tick-driven scheduling core against a
// Unix-domain-socket transport: dial, read framed records, call the
// core serially, write one result line per record. Startup parameter
// parsing lives here deliberately, outside the core, so the core stays
// a pure function of state and event batch.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ticksched/internal/pace"
	"ticksched/internal/sched"
	"ticksched/internal/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		socket    string
		quanta    int64
		cpus      int
		cfgPath   string
		tracePath string
		verbose   bool
		paceMs    int
	)

	root := &cobra.Command{
		Use:   "ticksched",
		Short: "tick-driven CFS-inspired scheduling simulator core",
	}
	root.Flags().StringVar(&socket, "socket", "./event.socket", "connection endpoint (Unix domain socket path)")
	root.Flags().Int64Var(&quanta, "quanta", 0, "abstract quanta unit scaling vruntime increments (<=0 substitutes 1)")
	root.Flags().IntVar(&cpus, "cpus", 0, "number of simulated CPUs (<=0 substitutes 1)")
	root.Flags().StringVar(&cfgPath, "config", "", "optional YAML config file")
	root.Flags().StringVar(&tracePath, "trace", "", "optional CSV trace output path")
	root.Flags().BoolVar(&verbose, "verbose", false, "log per-CPU dispatch diagnostics at debug level")
	root.Flags().IntVar(&paceMs, "pace-ms", 0, "throttle record consumption to one record per N milliseconds (0 = as fast as possible)")

	exitCode := 0
	root.RunE = func(cmd *cobra.Command, args []string) error {
		exitCode = drive(socket, quanta, cpus, cfgPath, tracePath, verbose, paceMs)
		return nil
	}
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return exitCode
}

func drive(socket string, quanta int64, cpus int, cfgPath, tracePath string, verbose bool, paceMs int) int {
	if socket == "" {
		fmt.Fprintln(os.Stderr, "ticksched: empty --socket endpoint")
		return 2
	}

	cfg := sched.Load(cfgPath)
	if quanta > 0 {
		cfg.Quanta = quanta
	}
	if cpus > 0 {
		cfg.CPUCount = cpus
	}
	// A nonpositive quanta or CPU count is meaningless to the core, so
	// the driver substitutes 1 rather than passing it through.
	if cfg.Quanta <= 0 {
		cfg.Quanta = 1
	}
	if cfg.CPUCount <= 0 {
		cfg.CPUCount = 1
	}

	log := newLogger(cfg.LogLevel, verbose)
	log.WithFields(logrus.Fields{
		"socket":   socket,
		"quanta":   cfg.Quanta,
		"cpuCount": cfg.CPUCount,
	}).Info("starting ticksched")

	conn, err := transport.Dial(socket, log)
	if err != nil {
		log.WithError(err).Error("transport dial failed")
		return 1
	}
	defer conn.Close()

	var csvWriter *csv.Writer
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			log.WithError(err).Error("failed to open trace file")
			return 1
		}
		defer f.Close()
		csvWriter = csv.NewWriter(f)
		csvWriter.Write([]string{"vtime", "cpu", "kind", "task_id", "vruntime"})
		defer csvWriter.Flush()
	}

	var pacer *pace.Pacer
	if paceMs > 0 {
		pacer = pace.NewPacer(time.Duration(paceMs) * time.Millisecond)
	}

	scheduler := sched.New(cfg.CPUCount, cfg.Quanta)
	sink := transport.NewSink(os.Stdout)

	records, errCh := conn.Records()
	for rec := range records {
		if pacer != nil {
			pacer.Wait()
		}

		result, trace := scheduler.Tick(rec.Vtime, rec.Events)

		if err := sink.Write(result); err != nil {
			log.WithError(err).Error("result write failed")
			return 1
		}

		for _, ev := range trace {
			if verbose {
				log.Debug(ev.FormatLine())
			}
			if csvWriter != nil {
				csvWriter.Write([]string{
					strconv.FormatInt(ev.Vtime, 10),
					strconv.Itoa(ev.CPU),
					ev.Kind.String(),
					ev.TaskID,
					strconv.FormatInt(ev.Vruntime, 10),
				})
			}
		}
		if csvWriter != nil {
			csvWriter.Flush()
		}
	}

	if err, ok := <-errCh; ok && err != nil {
		log.WithError(err).Error("transport read failed")
		return 1
	}

	return 0
}

func newLogger(level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)
	return log
}
