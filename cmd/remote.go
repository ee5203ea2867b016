package cmd

import (
	"errors"
	"fmt"

	"github.com/honganh1206/datetime/api"
	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/server"
	"github.com/honganh1206/datetime/utils"
	"github.com/spf13/cobra"
)

// The server keeps its own history, so nothing is recorded locally here.

func remoteParse(cmd *cobra.Command, input, pattern, out string) error {
	client := api.NewClient(remoteURL)

	resp, err := client.Parse(cmd.Context(), server.ParseRequest{Input: input, Format: pattern, Out: out})
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			fmt.Fprint(cmd.ErrOrStderr(), utils.RenderDiagnosticOf(httpErr.Diagnostic))
			return reportedError{err}
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
	if resp.Formatted != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Formatted)
	}
	return nil
}

func remoteGuess(cmd *cobra.Command, input string) error {
	client := api.NewClient(remoteURL)

	resp, err := client.Guess(cmd.Context(), input)
	if errors.Is(err, api.ErrNoMatch) {
		return fmt.Errorf("%w: %q", ErrNoMatch, input)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", resp.Text, resp.Format)
	return nil
}

func remoteHistory(cmd *cobra.Command, id string, limit int) error {
	client := api.NewClient(remoteURL)

	if id != "" {
		r, err := client.HistoryRecord(cmd.Context(), id)
		if err != nil {
			return err
		}
		return renderHistory(cmd, []*history.Record{r})
	}

	records, err := client.History(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return renderHistory(cmd, records)
}

func PingHandler(cmd *cobra.Command, args []string) error {
	client := api.NewClient(remoteURL)
	if err := client.Health(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
