package extract

import (
	"os"
	"testing"

	"twii-miner/core/labels"

	"github.com/stretchr/testify/assert"
)

func TestLoreDocuments_AllRequired(t *testing.T) {
	for _, d := range LoreDocuments {
		t.Run(d.File, func(t *testing.T) {
			docs := fixtureDocuments()
			delete(docs, lorePath(d.File))
			_, err := extractFixture(t, docs)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestLabelDocuments_AllRequired(t *testing.T) {
	for _, name := range LabelDocuments {
		t.Run(name, func(t *testing.T) {
			docs := fixtureDocuments()
			delete(docs, labelPath(labels.FR, name))
			_, err := extractFixture(t, docs)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}
