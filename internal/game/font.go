package game

import (
	"bytes"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelFontSize    = 13
	labelLineSpacing = 15
)

// loadLabelFace returns the face for note labels. A font at path is
// trusted to carry ♯ and ♭ and is reported as unicode; otherwise the
// built-in Go Regular face is used with ASCII accidentals. A nil face
// means labels fall back to the debug font.
func loadLabelFace(path string, log *zap.SugaredLogger) (text.Face, bool) {
	if path != "" {
		src, err := loadFaceSource(path)
		if err == nil {
			log.Debugw("loaded label font", "path", path)
			return &text.GoTextFace{Source: src, Size: labelFontSize}, true
		}
		log.Warnw("failed to load the label font", "path", path, "error", err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Errorw("failed to parse the built-in font", "error", err)
		return nil, false
	}
	return &text.GoTextFace{Source: src, Size: labelFontSize}, false
}

func loadFaceSource(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return text.NewGoTextFaceSource(bytes.NewReader(data))
}
