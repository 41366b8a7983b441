// Package file provides repository implementations backed by files on disk.
package file

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// settingsDocument is the on-disk layout of the settings file.
type settingsDocument struct {
	Mode      string                `toml:"mode"`
	Particles domain.ParticleConfig `toml:"particles"`
}

// SettingsRepository implements ports.SettingsRepository on a TOML file.
//
// Example file:
//
//	mode = "overlay"
//
//	[particles]
//	particle_life = 1.5
//	spawn_probability = 0.1
//
// Keys missing from the file keep their default value.
//
// Thread-safe: All operations protected by sync.Mutex. Writes go to a
// temporary file that is renamed over the target.
type SettingsRepository struct {
	logger *slog.Logger
	path   string
	mu     sync.Mutex
}

// NewSettingsRepository creates a repository for the file at path.
// The file does not need to exist yet.
func NewSettingsRepository(path string, logger *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		logger: logger,
		path:   path,
	}
}

// Path returns the settings file location.
func (r *SettingsRepository) Path() string {
	return r.path
}

// SaveParticleConfig writes cfg, keeping the stored mode.
func (r *SettingsRepository) SaveParticleConfig(cfg domain.ParticleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	doc.Particles = cfg
	return r.write(doc)
}

// LoadParticleConfig reads the particle options.
// A missing file yields domain.DefaultParticleConfig.
func (r *SettingsRepository) LoadParticleConfig() (domain.ParticleConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return domain.DefaultParticleConfig(), err
	}
	return doc.Particles, nil
}

// SaveMode writes mode, keeping the stored particle options.
func (r *SettingsRepository) SaveMode(mode domain.RenderMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	doc.Mode = mode.String()
	return r.write(doc)
}

// LoadMode reads the display mode, defaulting to domain.ModeNormal.
func (r *SettingsRepository) LoadMode() (domain.RenderMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return domain.ModeNormal, err
	}

	mode, err := domain.ParseRenderMode(doc.Mode)
	if err != nil {
		return domain.ModeNormal, domain.NewRepositoryError("load", "toml", "unknown mode", err)
	}
	return mode, nil
}

// Clear removes the settings file.
func (r *SettingsRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewRepositoryError("clear", "toml", "failed to remove settings file", err)
	}
	return nil
}

// read decodes the file over a default document.
func (r *SettingsRepository) read() (settingsDocument, error) {
	doc := settingsDocument{
		Mode:      domain.ModeNormal.String(),
		Particles: domain.DefaultParticleConfig(),
	}

	meta, err := toml.DecodeFile(r.path, &doc)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, domain.NewRepositoryError("load", "toml", "failed to decode "+r.path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 && r.logger != nil {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		r.logger.Warn("ignoring unknown settings keys",
			slog.String("path", r.path),
			slog.Any("keys", keys))
	}
	return doc, nil
}

func (r *SettingsRepository) write(doc settingsDocument) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return domain.NewRepositoryError("save", "toml", "failed to encode settings", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewRepositoryError("save", "toml", "failed to create settings directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return domain.NewRepositoryError("save", "toml", "failed to create temporary file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return domain.NewRepositoryError("save", "toml", "failed to write settings", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.NewRepositoryError("save", "toml", "failed to write settings", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return domain.NewRepositoryError("save", "toml", "failed to replace settings file", err)
	}

	if r.logger != nil {
		r.logger.Debug("settings written", slog.String("path", r.path))
	}
	return nil
}

// Verify interface implementation
var _ ports.SettingsRepository = (*SettingsRepository)(nil)
