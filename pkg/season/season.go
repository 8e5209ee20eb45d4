// Package season provides preprocessing transforms applied to datasets before modeling
package season

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// Transform names.
const (
	TransformNone = ""
	TransformLog2 = "log2"
)

// Config holds preprocessing configuration
type Config struct {
	Transform string // TransformNone or TransformLog2
	Scale     string // rescaling/centering method (none implemented; IonQuant scales internally)
	Logger    logrus.FieldLogger
}

// Apply applies the configured transforms to a protein dataset. On error the
// dataset is left as it was.
func (c *Config) Apply(prots *core.ProteinDataset) error {
	log := c.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	if prots == nil {
		return fmt.Errorf("no protein dataset to preprocess")
	}

	if c.Scale != "" {
		return fmt.Errorf("scaling method %q is not implemented", c.Scale)
	}

	switch strings.ToLower(c.Transform) {
	case TransformNone:
		return nil
	case TransformLog2:
		if err := prots.Log2Transform(); err != nil {
			return err
		}
		log.Debugf("Log2-transformed %d intensities", prots.Len())
		return nil
	default:
		return fmt.Errorf("unknown transform %q", c.Transform)
	}
}
