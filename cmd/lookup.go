package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/admitcard"
	"github.com/jjenkins/mateng/internal/model"
)

var lookupPrint bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <form-number>",
	Short: "Look up the admit card status for a form number",
	Long: `Lookup queries the applications table for a form number and reports
whether the admit card is ready, and if not, what is still pending.

Examples:
  # Check the status of an application
  ./mateng lookup MM-1004

  # Print the admit card when it is ready
  ./mateng lookup MM-1004 --print`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupPrint, "print", false, "Print the admit card when it is ready")
}

// consoleNotifier writes notifications to a terminal stream
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Notify(title, message string, severity admitcard.Severity) {
	fmt.Fprintf(n.w, "%s: %s\n", title, message)
}

// textPrinter writes the admit card as plain text
type textPrinter struct {
	w io.Writer
}

func (p textPrinter) Print(r model.ApplicationRecord) {
	fmt.Fprintln(p.w, "=== Mental Maths Competition Admit Card ===")
	fmt.Fprintf(p.w, "Form No.:       %s\n", r.FormNumber)
	fmt.Fprintf(p.w, "Roll Number:    %s\n", r.RollNumber.String)
	fmt.Fprintf(p.w, "Name:           %s\n", r.ApplicantName)
	fmt.Fprintf(p.w, "Father's Name:  %s\n", r.FatherName)
	fmt.Fprintf(p.w, "Class:          %s\n", r.ExamClass)
	fmt.Fprintf(p.w, "Exam Date:      %s\n", r.ExamDate.String)
	fmt.Fprintf(p.w, "Exam Time:      %s\n", r.ExamTime.String)
	fmt.Fprintf(p.w, "Exam Centre:    %s\n", r.ExamCentre.String)
	fmt.Fprintf(p.w, "Photo:          %s\n", r.PhotoURL)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	source, err := openDataSource(cfg, log)
	if err != nil {
		return err
	}
	defer source.close()

	return lookup(ctx, source.fetcher, args[0], lookupPrint, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
}

// causeFetcher keeps the last fetch error so the command can return it.
type causeFetcher struct {
	admitcard.Fetcher
	err error
}

func (f *causeFetcher) FetchByFormNumber(ctx context.Context, formNumber string) ([]model.ApplicationRecord, error) {
	records, err := f.Fetcher.FetchByFormNumber(ctx, formNumber)
	if err != nil {
		f.err = &admitcard.TransportError{FormNumber: formNumber, Err: err}
	}
	return records, err
}

func lookup(ctx context.Context, fetcher admitcard.Fetcher, formNo string, printCard bool, out, errOut io.Writer, log *zap.Logger) error {
	source := &causeFetcher{Fetcher: fetcher}
	session := admitcard.NewSession(source, consoleNotifier{w: errOut}, textPrinter{w: out}, nil, log)

	outcome := session.PerformLookup(ctx, formNo)
	state := session.State()
	if state.StatusMessage != "" {
		fmt.Fprintln(out, state.StatusMessage)
	}

	if printCard {
		session.Print()
	}

	switch outcome {
	case admitcard.OutcomeInvalid:
		return admitcard.ErrValidation
	case admitcard.OutcomeTransportError:
		return fmt.Errorf("failed to look up %s: %w", formNo, source.err)
	case admitcard.OutcomeNotFound:
		return fmt.Errorf("no application found for %s", formNo)
	}
	return nil
}
