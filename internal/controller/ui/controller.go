package controller

import (
	"bytes"
	"context"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/service"
)

// New returns fiber app serving the one-page web UI.
func New(srvProject Project) *fiber.App {
	uiCtr := uiController{
		srv:  srvProject,
		tmpl: template.Must(template.New("index").Parse(indexTemplate)),
	}

	app := fiber.New()

	app.Get("/", uiCtr.index)

	return app
}

type uiController struct {
	srv  Project
	tmpl *template.Template
}

type Project interface {
	State(ctx context.Context) (models.ProjectState, error)
}

func (uiCtr *uiController) index(c *fiber.Ctx) error {
	var page struct {
		Project *models.ProjectState
	}

	state, err := uiCtr.srv.State(context.TODO())
	switch {
	case err == nil:
		page.Project = &state
	case errors.Is(err, service.ErrProjectNotFound):
		// page renders its "no project loaded" branch
	default:
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	var buf bytes.Buffer
	if err := uiCtr.tmpl.Execute(&buf, page); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>FightLight - Boxing Highlight Cutter</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .section { margin: 20px 0; padding: 10px; border: 1px solid #ccc; }
        button { margin: 5px; padding: 10px; }
        .highlight { background: #f0f0f0; margin: 10px 0; padding: 10px; }
    </style>
</head>
<body>
    <h1>FightLight - Boxing Highlight Cutter</h1>

    <div class="section">
        <h2>Project State</h2>
        <p>Current project: <span id="project-name">{{if .Project}}{{.Project.ProjectName}}{{else}}No project loaded{{end}}</span></p>
        <p>Video file: <span id="video-file">{{if and .Project .Project.VideoFile}}{{.Project.VideoFile.Path}}{{else}}No video loaded{{end}}</span></p>
        <button onclick="location.href='/project/state'">View Full State (JSON)</button>
    </div>

    <div class="section">
        <h2>Highlights</h2>
        <div id="highlights">
            {{if and .Project .Project.Highlights}}
                {{range .Project.Highlights}}
                <div class="highlight">
                    <strong>{{.Name}}</strong> ({{.TimeRange.Start}}s - {{.TimeRange.End}}s)
                    <br>{{if .Description}}{{.Description}}{{else}}No description{{end}}
                    <br><button onclick="selectHighlight('{{.ID}}')">Select</button>
                </div>
                {{end}}
            {{else}}
                <p>No highlights loaded</p>
            {{end}}
        </div>
    </div>

    <div class="section">
        <h2>Export</h2>
        <button onclick="exportClip()">Export Selected Clip</button>
        <button onclick="exportAll()">Export All Highlights</button>
    </div>

    <script>
        function selectHighlight(id) {
            fetch('/project/select', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({highlight_id: id})
            }).then(() => location.reload());
        }
        function exportClip() {
            fetch('/export/clip', {method: 'POST'})
                .then(r => r.json()).then(d => alert(JSON.stringify(d)));
        }
        function exportAll() {
            fetch('/export/all', {method: 'POST'})
                .then(r => r.json()).then(d => alert(JSON.stringify(d)));
        }
    </script>
</body>
</html>
`
