package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/gofiber/fiber/v2"

	"resumatch/internal/models"
	"resumatch/internal/services"
)

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"formatScore": models.FormatScore,
}).Parse(pageTemplate))

type PageHandler struct {
	validator   services.UploadValidator
	cleaner     services.JobDescriptionCleaner
	matchClient services.MatchClient
}

func NewPageHandler(
	validator services.UploadValidator,
	cleaner services.JobDescriptionCleaner,
	matchClient services.MatchClient,
) *PageHandler {
	return &PageHandler{
		validator:   validator,
		cleaner:     cleaner,
		matchClient: matchClient,
	}
}

// formPage is the template payload. Error and Result are mutually
// exclusive; JobDescription and FileName echo the inputs back into the form.
type formPage struct {
	JobDescription string
	FileName       string
	Error          string
	Result         *models.MatchResult
}

// HandleIndex renders the empty upload form.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, &formPage{})
}

// HandleMatch runs one full cycle for a browser form submission: validate
// both inputs, call the scoring service, and re-render the page with either
// the result or an error banner.
func (h *PageHandler) HandleMatch(c *fiber.Ctx) error {
	page := &formPage{JobDescription: c.FormValue("job_description")}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		page.Error = "no file selected"
		return h.render(c, page)
	}
	page.FileName = fileHeader.Filename

	file, err := fileHeader.Open()
	if err != nil {
		page.Error = "failed to read uploaded file"
		return h.render(c, page)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		page.Error = "failed to read uploaded file"
		return h.render(c, page)
	}

	candidate, err := h.validator.ValidateResume(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		page.Error = err.Error()
		return h.render(c, page)
	}

	jobDescription := h.cleaner.Normalize(page.JobDescription)
	if err := h.validator.ValidateJobDescription(jobDescription); err != nil {
		page.Error = err.Error()
		return h.render(c, page)
	}

	result, err := h.matchClient.CalculateMatch(c.Context(), candidate, jobDescription)
	if err != nil {
		page.Error = err.Error()
		return h.render(c, page)
	}

	page.Result = result
	return h.render(c, page)
}

func (h *PageHandler) render(c *fiber.Ctx, page *formPage) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Resume Match</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #1f2933; }
        h1 { font-size: 1.6rem; }
        form { display: flex; flex-direction: column; gap: 1rem; margin-bottom: 2rem; }
        textarea { min-height: 10rem; padding: 0.5rem; font: inherit; }
        button { align-self: flex-start; padding: 0.5rem 1.5rem; font: inherit; cursor: pointer; }
        .banner { background: #fde8e8; color: #9b1c1c; padding: 0.75rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
        .score { font-size: 3rem; font-weight: 700; }
        .excellent { color: #047857; }
        .good { color: #0369a1; }
        .fair { color: #b45309; }
        .weak { color: #b91c1c; }
        .skills li { margin: 0.2rem 0; }
        .breakdown td { padding: 0.25rem 1rem 0.25rem 0; }
    </style>
</head>
<body>
    <h1>Resume Match</h1>
    {{if .Error}}<div class="banner">{{.Error}}</div>{{end}}
    <form method="post" action="/match" enctype="multipart/form-data">
        <label>Resume (PDF{{if .FileName}}, last: {{.FileName}}{{end}})
            <input type="file" name="file" accept="application/pdf" required>
        </label>
        <label>Job description
            <textarea name="job_description" placeholder="Paste the job description here">{{.JobDescription}}</textarea>
        </label>
        <button type="submit">Calculate match</button>
    </form>
    {{with .Result}}
    <section>
        <div class="score {{.Tier}}">{{formatScore .Score}}</div>
        <p>Match tier: <strong class="{{.Tier}}">{{.Tier}}</strong></p>
        {{if .MatchedSkills}}
        <h2>Matched skills</h2>
        <ul class="skills">{{range .MatchedSkills}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .MatchedPreferred}}
        <h2>Matched preferred skills</h2>
        <ul class="skills">{{range .MatchedPreferred}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .MissingSkills}}
        <h2>Missing skills</h2>
        <ul class="skills">{{range .MissingSkills}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .MissingCritical}}
        <h2>Missing critical skills</h2>
        <ul class="skills">{{range .MissingCritical}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .Suggestions}}
        <h2>Suggestions</h2>
        <ol>{{range .Suggestions}}<li>{{.}}</li>{{end}}</ol>
        {{end}}
        {{with .Breakdown}}
        <h2>Breakdown</h2>
        <table class="breakdown">
            <tr><td>Required skills</td><td>{{formatScore .RequiredMatch}}%</td></tr>
            <tr><td>Preferred skills</td><td>{{formatScore .PreferredMatch}}%</td></tr>
            <tr><td>Category matches</td><td>{{formatScore .CategoryMatches}}%</td></tr>
        </table>
        {{end}}
    </section>
    {{end}}
</body>
</html>`
