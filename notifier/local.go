package notifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dailyfeed/logger"
)

// Local writes each message as an .html and a .txt file for inspection.
type Local struct {
	dir string
	now func() time.Time
	log logger.Logger
}

// NewLocal writes into dir.
func NewLocal(dir string, log logger.Logger) *Local {
	if log == nil {
		log = logger.NewNop()
	}
	return &Local{dir: dir, now: time.Now, log: log}
}

func (l *Local) Name() string { return "local" }

func (l *Local) Deliver(_ context.Context, msg Message) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", l.dir, err)
	}

	base := artifactName(l.now())
	htmlPath := filepath.Join(l.dir, base+".html")
	textPath := filepath.Join(l.dir, base+".txt")

	if err := os.WriteFile(htmlPath, []byte(msg.HTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}
	if err := os.WriteFile(textPath, []byte(textArtifact(msg)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", textPath, err)
	}

	l.log.Info("email saved locally",
		logger.String("html", htmlPath),
		logger.String("text", textPath),
	)
	return nil
}

func artifactName(t time.Time) string {
	return "email_" + t.Format("20060102_150405")
}

func textArtifact(msg Message) string {
	return fmt.Sprintf("Subject: %s\nFrom: %s\nTo: %s\n\n%s", msg.Subject, msg.From, msg.To, msg.Text)
}
