package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"resumatch/internal/models"
)

// MatchAction runs one full cycle: select the resume, set the job
// description, submit, render. The exit status is non-zero on any
// validation or transport failure.
func MatchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Bool("strict") {
		cfg.Upload.StrictPDFCheck = true
	}

	session, validator := newSession(cfg)

	resumePath := cmd.String("resume")
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	if err := session.SelectFile(filepath.Base(resumePath), "", data); err != nil {
		return err
	}

	// Outside strict mode an unreadable PDF is accepted with a warning;
	// the scoring service gets the final say.
	if _, err := validator.Inspect(session.Candidate()); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  PDF could not be fully parsed; the scoring service may reject it\n")
	}

	jobDescription, err := readJobDescription(cmd)
	if err != nil {
		return err
	}
	session.SetJobDescription(jobDescription)

	state, err := session.Submit(ctx)
	if err != nil {
		return err
	}
	if state.Phase == models.PhaseFailure {
		return errors.New(state.Message)
	}

	if cmd.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(state.Result)
	}

	renderMatchResult(os.Stdout, state.Result)
	return nil
}

// readJobDescription resolves the description from --job, --job-text or
// piped stdin, in that order.
func readJobDescription(cmd *cli.Command) (string, error) {
	if path := cmd.String("job"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), nil
	}

	if text := cmd.String("job-text"); text != "" {
		return text, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read job description from stdin: %w", err)
	}
	return string(data), nil
}
