package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/assets"
	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/config"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/export"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// serveCommand exposes the engine over HTTP for upload UIs and other
// collaborators that consume the core through its operations.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8477", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	backend, err := cfg.OpenBackend(ctx)
	if err != nil {
		return err
	}
	positions := store.NewPositions(backend)
	defer positions.Close()

	srv := &server{cli: c, cfg: cfg, positions: positions}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/players", srv.handlePlayers)
		r.Get("/placements/{key}", srv.handleGetPlacements)
		r.Delete("/placements/{key}", srv.handleDeletePlacements)
		r.Post("/export", srv.handleExport)
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving", "addr", addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type server struct {
	cli       *CLI
	cfg       config.Config
	positions *store.Positions
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := roster.LoadFile(s.cfg.Roster)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *server) handleGetPlacements(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	recs, err := s.positions.Load(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *server) handleDeletePlacements(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := s.positions.Delete(r.Context(), key); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportRequest selects a player, an optional single view, and raster
// options for an HTTP-triggered export.
type exportRequest struct {
	PlayerName   string `json:"playerName"`
	JerseyNumber string `json:"jerseyNumber"`
	View         string `json:"view"`
	Format       string `json:"format"`
	DPI          int    `json:"dpi"`
	Background   string `json:"background"`
}

// handleExport composes the requested view and streams the raster back.
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode export request"))
		return
	}

	players, err := roster.LoadFile(s.cfg.Roster)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := roster.Find(players, req.PlayerName, req.JerseyNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	view := scene.View(req.View)
	if req.View == "" {
		view = scene.ViewFront
	}
	if !view.Valid() {
		writeError(w, errors.New(errors.ErrCodeInvalidView, "unknown view: %s", view))
		return
	}

	opts := s.cfg.ExportOptions()
	if req.Format != "" {
		opts.Format = export.Format(req.Format)
	}
	if req.DPI > 0 {
		opts.Multiplier = export.MultiplierForDPI(req.DPI)
	}
	if req.Background != "" {
		opts.Background = req.Background
	}
	if !opts.Format.Valid() {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format))
		return
	}

	comp := composer.New(s.positions, assets.NewImageLoader(),
		composer.WithTemplates(s.cfg.Templates),
		composer.WithRatios(s.cfg.Ratios),
		composer.WithLogger(s.cli.Logger),
	)
	ctx := r.Context()
	if err := comp.SelectPlayer(ctx, p); err != nil {
		writeError(w, err)
		return
	}
	if err := comp.SelectView(ctx, view); err != nil {
		writeError(w, err)
		return
	}

	img, err := export.RenderDesign(comp.Scene(), comp.Fonts(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(opts.Format))
	w.Header().Set("Content-Disposition",
		"attachment; filename=\""+export.FileName(p.PlayerName, p.JerseyNumber, view, opts.Format)+"\"")
	if err := export.Encode(w, img, opts); err != nil {
		s.cli.Logger.Error("encode export response", "err", err)
	}
}

func contentType(f export.Format) string {
	switch f {
	case export.FormatJPEG:
		return "image/jpeg"
	case export.FormatWebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidView,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRoster:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePlayerNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeEmptyExport:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{
		"code":    string(errors.GetCode(err)),
		"message": errors.UserMessage(err),
	})
}
