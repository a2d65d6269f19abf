package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"

	"resumatch/internal/models"
	"resumatch/internal/services"
)

const (
	actionSelectResume    = "Select resume"
	actionEditDescription = "Edit job description"
	actionSubmit          = "Submit"
	actionClearResume     = "Clear resume"
	actionQuit            = "Quit"
)

// FormAction is the terminal rendition of the upload form: pick a file,
// paste a description, submit, read the result, edit and resubmit. Changing
// either input clears the previous result, exactly like the web form.
func FormAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, validator := newSession(cfg)

	fmt.Printf("Interactive resume match against %s\n", cfg.Match.BaseURL)

	for {
		printStatus(session)

		items := []string{actionSelectResume, actionEditDescription, actionSubmit}
		if session.Candidate() != nil {
			items = append(items, actionClearResume)
		}
		items = append(items, actionQuit)

		menu := promptui.Select{
			Label: "Action",
			Items: items,
		}
		_, choice, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return fmt.Errorf("prompt failed: %w", err)
		}

		switch choice {
		case actionSelectResume:
			selectResume(session, validator)
		case actionEditDescription:
			editDescription(session)
		case actionSubmit:
			submit(ctx, session)
		case actionClearResume:
			session.ClearFile()
			fmt.Println("✓ Resume cleared")
		case actionQuit:
			return nil
		}
	}
}

func selectResume(session services.MatchSession, validator services.UploadValidator) {
	prompt := promptui.Prompt{
		Label: "Path to resume PDF",
	}
	path, err := prompt.Run()
	if err != nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		return
	}

	if err := session.SelectFile(filepath.Base(path), "", data); err != nil {
		fmt.Printf("✗ %v\n", err)
		return
	}

	if details, err := validator.Inspect(session.Candidate()); err == nil {
		fmt.Printf("✓ Selected %s (%d pages)\n", filepath.Base(path), details.PageCount)
	} else {
		fmt.Printf("✓ Selected %s\n", filepath.Base(path))
		fmt.Println("⚠ PDF could not be fully parsed; the scoring service may reject it")
	}
}

func editDescription(session services.MatchSession) {
	prompt := promptui.Prompt{
		Label:   "Job description",
		Default: session.JobDescription(),
	}
	text, err := prompt.Run()
	if err != nil {
		return
	}

	session.SetJobDescription(text)
	fmt.Println("✓ Job description updated")
}

func submit(ctx context.Context, session services.MatchSession) {
	fmt.Println("… Submitting")

	state, err := session.Submit(ctx)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		return
	}

	switch state.Phase {
	case models.PhaseSuccess:
		renderMatchResult(os.Stdout, state.Result)
	case models.PhaseFailure:
		fmt.Printf("✗ %s\n", state.Message)
	}
}

func printStatus(session services.MatchSession) {
	fmt.Println()
	if candidate := session.Candidate(); candidate != nil {
		fmt.Printf("Resume: %s (%d bytes)\n", candidate.Name, candidate.SizeBytes)
	} else {
		fmt.Println("Resume: none selected")
	}

	if description := session.JobDescription(); description != "" {
		fmt.Printf("Job description: %d characters\n", len(description))
	} else {
		fmt.Println("Job description: empty")
	}

	if state := session.State(); state.Phase == models.PhaseSuccess {
		fmt.Printf("Last result: %s (%s)\n", models.FormatScore(state.Result.Score), state.Result.Tier())
	}
}
