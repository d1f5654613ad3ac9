package webui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/transit"
)

const (
	backupTimeFormat  = "20060102_150405"
	searchResultLimit = 10
	directoryMaxAge   = 6 * time.Hour
)

var backupNamePattern = regexp.MustCompile(`^config_\d{8}_\d{6}\.json$`)

// Options configure the configuration API server.
type Options struct {
	ConfigPath string
	Log        *zap.SugaredLogger
	Client     transit.Boarder
	Directory  *transit.Directory

	// RestartCmd overrides the systemctl restart invocation, mainly for
	// tests. nil uses the default.
	RestartCmd func(ctx context.Context) error
}

// Server exposes the board configuration over HTTP so the display can be
// managed from a browser on the same network.
type Server struct {
	app        *fiber.App
	cfgPath    string
	backupsDir string
	log        *zap.SugaredLogger
	client     transit.Boarder
	directory  *transit.Directory
	restart    func(ctx context.Context) error
	started    time.Time

	dirMu     sync.Mutex
	dirCache  []transit.DirectoryEntry
	dirLoaded time.Time
}

// New builds the server and registers all routes.
func New(opts Options) (*Server, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	restart := opts.RestartCmd
	if restart == nil {
		restart = func(ctx context.Context) error {
			return exec.CommandContext(ctx, "sudo", "systemctl", "restart", "busdisplay").Run()
		}
	}

	// Resolve once so backups land next to the config file.
	cfgPath, err := expandPath(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	s := &Server{
		app:        fiber.New(fiber.Config{DisableStartupMessage: true}),
		cfgPath:    cfgPath,
		backupsDir: filepath.Join(filepath.Dir(cfgPath), "backups"),
		log:        opts.Log,
		client:     opts.Client,
		directory:  opts.Directory,
		restart:    restart,
		started:    time.Now(),
	}

	s.app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		s.log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
		)
		return err
	})
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Get("/config", s.getConfig)
	api.Post("/config", s.postConfig)
	api.Get("/status", s.getStatus)
	api.Post("/restart", s.postRestart)
	api.Get("/search/stops", s.searchStops)
	api.Get("/stops/:id/info", s.stopInfo)
	api.Get("/backups", s.listBackups)
	api.Get("/backups/:name", s.getBackup)

	return s, nil
}

// Listen serves HTTP on addr until the listener fails or is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) getConfig(c *fiber.Ctx) error {
	cfg, err := config.Load(s.cfgPath)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(cfg)
}

func (s *Server) postConfig(c *fiber.Ctx) error {
	cfg, err := config.Parse(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	backup, err := s.backupCurrent()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("backup config: %v", err))
	}

	if err := config.Save(s.cfgPath, cfg); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("save config: %v", err))
	}

	s.log.Infow("config updated", "backup", backup)
	return c.JSON(fiber.Map{"saved": true, "backup": backup})
}

// backupCurrent copies the live config into the backups directory with a
// timestamped name. Returns "" when no config exists yet.
func (s *Server) backupCurrent() (string, error) {
	data, err := os.ReadFile(s.cfgPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.backupsDir, 0o755); err != nil {
		return "", err
	}
	name := "config_" + time.Now().Format(backupTimeFormat) + ".json"
	if err := os.WriteFile(filepath.Join(s.backupsDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Server) getStatus(c *fiber.Ctx) error {
	_, err := os.Stat(s.cfgPath)
	return c.JSON(fiber.Map{
		"running":        true,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"config_path":    s.cfgPath,
		"config_exists":  err == nil,
		"time":           time.Now().Format(time.RFC3339),
	})
}

func (s *Server) postRestart(c *fiber.Ctx) error {
	if err := s.restart(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("restart display: %v", err))
	}
	return c.JSON(fiber.Map{"restarted": true})
}

func (s *Server) searchStops(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}

	entries, err := s.directoryEntries(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("stop directory: %v", err))
	}

	matches := transit.SearchDirectory(entries, query, searchResultLimit)
	results := make([]fiber.Map, 0, len(matches))
	for _, m := range matches {
		results = append(results, fiber.Map{
			"name":         m.FullName(),
			"municipality": m.Municipality,
			"didoc_code":   m.DidocCode,
			"long_code":    m.LongCode,
		})
	}
	return c.JSON(fiber.Map{"results": results})
}

func (s *Server) stopInfo(c *fiber.Ctx) error {
	id := c.Params("id")
	if s.client == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "stationboard client not configured")
	}

	resp, err := s.client.Stationboard(c.Context(), transit.StationboardQuery{StopID: id})
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("stationboard: %v", err))
	}

	// Collect the distinct lines serving the stop with their terminals.
	type lineInfo struct {
		Line      string   `json:"line"`
		Terminals []string `json:"terminals"`
	}
	seen := map[string]map[string]bool{}
	for _, conn := range resp.Connections {
		line := conn.LineLabel()
		if line == "" {
			continue
		}
		if seen[line] == nil {
			seen[line] = map[string]bool{}
		}
		if conn.Terminal.Name != "" {
			seen[line][conn.Terminal.Name] = true
		}
	}

	lines := make([]lineInfo, 0, len(seen))
	for line, terminals := range seen {
		info := lineInfo{Line: line}
		for t := range terminals {
			info.Terminals = append(info.Terminals, t)
		}
		sort.Strings(info.Terminals)
		lines = append(lines, info)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Line < lines[j].Line })

	return c.JSON(fiber.Map{
		"id":    resp.Stop.ID,
		"name":  resp.Stop.Name,
		"lines": lines,
	})
}

func (s *Server) listBackups(c *fiber.Ctx) error {
	entries, err := os.ReadDir(s.backupsDir)
	if os.IsNotExist(err) {
		return c.JSON(fiber.Map{"backups": []string{}})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	type backupInfo struct {
		Name     string    `json:"name"`
		Size     int64     `json:"size"`
		Modified time.Time `json:"modified"`
	}
	backups := make([]backupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !backupNamePattern.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backupInfo{Name: e.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	// Newest first; the timestamped names sort lexically.
	sort.Slice(backups, func(i, j int) bool { return backups[i].Name > backups[j].Name })
	return c.JSON(fiber.Map{"backups": backups})
}

func (s *Server) getBackup(c *fiber.Ctx) error {
	name := c.Params("name")
	if !backupNamePattern.MatchString(name) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid backup name")
	}
	return c.SendFile(filepath.Join(s.backupsDir, name))
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// directoryEntries returns the cached stop directory, refetching it once the
// cache ages out.
func (s *Server) directoryEntries(ctx context.Context) ([]transit.DirectoryEntry, error) {
	if s.directory == nil {
		return nil, fmt.Errorf("directory not configured")
	}

	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	if s.dirCache != nil && time.Since(s.dirLoaded) < directoryMaxAge {
		return s.dirCache, nil
	}

	entries, err := s.directory.Fetch(ctx)
	if err != nil {
		if s.dirCache != nil {
			// Serve the stale directory rather than failing the search.
			return s.dirCache, nil
		}
		return nil, err
	}
	s.dirCache = entries
	s.dirLoaded = time.Now()
	return entries, nil
}
