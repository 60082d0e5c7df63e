package app

import (
	"bytes"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/readeck/ditherpunk/configs"
)

type jobLogFormatter struct{}

func (f *jobLogFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer

	w := color.New(color.FgWhite)
	c := color.New(color.FgCyan)

	w.Fprint(&b, "[DITHER] ")

	mode, _ := entry.Data["mode"].(string)
	switch mode {
	case "threshold", "random", "ordered":
		color.New(color.Bold, color.FgHiWhite).Fprint(&b, mode)
	case "diffusion":
		color.New(color.Bold, color.FgHiBlue).Fprint(&b, mode)
	default:
		color.New(color.Bold, color.FgHiMagenta).Fprint(&b, mode)
	}

	w.Fprintf(&b, " %s -> %s ", entry.Data["input"], entry.Data["output"])
	c.Fprintf(&b, "%dx%d", entry.Data["width"], entry.Data["height"])
	w.Fprint(&b, " in ")

	elapsed := time.Duration(entry.Data["elapsed_ms"].(float64) * 1000000.0)
	switch {
	case elapsed < 500*time.Millisecond:
		color.New(color.FgGreen).Fprint(&b, elapsed)
	case elapsed < 2*time.Second:
		color.New(color.FgYellow).Fprint(&b, elapsed)
	default:
		color.New(color.FgRed).Fprint(&b, elapsed)
	}

	b.WriteString("\n")
	return b.Bytes(), nil
}

// newLogger returns the logger of finished jobs. In dev mode, it's
// a compact, colored, one line per image logger.
func newLogger() *log.Logger {
	if !configs.Config.Main.DevMode {
		return log.StandardLogger()
	}

	color.NoColor = false
	l := log.New()
	l.Out = log.StandardLogger().Out
	l.Formatter = &jobLogFormatter{}
	l.Level = log.StandardLogger().Level
	return l
}
