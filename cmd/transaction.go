package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/secrecy-farm-cli/internal/application"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/spf13/cobra"
)

// prompt reads answers line by line from the command's stdin.
type prompt struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPrompt(cmd *cobra.Command) *prompt {
	return &prompt{reader: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

func (p *prompt) ask(question string) (string, error) {
	_, _ = fmt.Fprint(p.out, question)

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// confirm defaults to no: only y or yes proceed.
func (p *prompt) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

type transactionOptions struct {
	yes        bool
	question   string
	processing string
}

// driveTransaction takes a workflow sitting in confirm through processing
// to a final status, offering a retry after a failed transaction when the
// session is interactive. It returns false when the user declined.
func driveTransaction(cmd *cobra.Command, app *app, p *prompt, wf *application.TransactionWorkflow, opts transactionOptions) (bool, error) {
	for {
		if !opts.yes {
			ok, err := p.confirm(opts.question)
			if err != nil {
				return false, err
			}
			if !ok {
				wf.Cancel()
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return false, nil
			}
		}

		err := runTransactionSpinner(cmd.Context(), cmd.ErrOrStderr(), opts.processing, wf.Run)
		if err == nil {
			if persistErr := app.persistError(); persistErr != nil {
				return false, fmt.Errorf("transaction confirmed but positions were not saved: %w", persistErr)
			}
			return true, nil
		}

		if errors.Is(err, domain.ErrNotConnected) {
			wf.Cancel()
			return false, fmt.Errorf("%w: run 'sf wallet connect <address>' first", err)
		}

		var txErr *domain.TransactionError
		if !errors.As(err, &txErr) || opts.yes {
			return false, err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Transaction failed: %s\n", sanitizeForTerminal(wf.FailureReason()))
		retry, promptErr := p.confirm("Retry?")
		if promptErr != nil {
			return false, promptErr
		}
		if !retry {
			_ = wf.Dismiss()
			return false, err
		}

		if err := wf.Retry(); err != nil {
			return false, err
		}
		if wf.Phase() == domain.PhaseInput {
			if err := wf.Submit(); err != nil {
				return false, err
			}
		}
	}
}
