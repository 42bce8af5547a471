package suite

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	routerApp "github.com/fightlight/fightlight/internal/app/router"
	"github.com/fightlight/fightlight/internal/config"
	"github.com/fightlight/fightlight/internal/storage/jsonfile"
)

// Actual environment
var (
	_   = godotenv.Load("../.env")
	cfg = loadConfig()
)

func loadConfig() *config.Config {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.MustLoadPath(path)
	}
	return &config.Config{
		Env: "local",
		HTTPServer: config.HTTPServer{
			Address: "localhost:8080",
		},
	}
}

// Suite runs the real router in-process; requests go through
// fiber's Test transport, no listening socket involved.
type Suite struct {
	StatePath  string
	ExportsDir string
}

func New(t *testing.T) (*Suite, *httpexpect.Expect) {
	t.Helper()

	dir := t.TempDir()

	s := &Suite{
		StatePath:  filepath.Join(dir, "project_state.json"),
		ExportsDir: filepath.Join(dir, "exports"),
	}

	storage, err := jsonfile.New(s.StatePath)
	if err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := routerApp.New(log, storage, cfg.Address, s.ExportsDir)

	e := httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  "http://" + cfg.Address,
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: fiberTransport{app: router.Fiber()},
		},
	})

	return s, e
}

type fiberTransport struct {
	app *fiber.App
}

func (ft fiberTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return ft.app.Test(req, -1)
}
