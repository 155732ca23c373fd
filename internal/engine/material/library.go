package material

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/internal/logger"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// NormalSuffix names the companion normal map of a surface texture.
const NormalSuffix = "_nrm"

// Library applies catalog textures to materials.
type Library struct {
	catalog     *texture.Catalog
	normalScale math.Vec2
}

// NewLibrary creates a library. normalScale is applied whenever a normal map is set.
func NewLibrary(catalog *texture.Catalog, normalScale math.Vec2) *Library {
	return &Library{catalog: catalog, normalScale: normalScale}
}

// Catalog returns the underlying texture catalog.
func (l *Library) Catalog() *texture.Catalog {
	return l.catalog
}

// Apply sets the named texture as the surface map of each material. When a
// "<name>_nrm" entry exists it becomes the normal map; otherwise any previous
// normal map is cleared. Materials are left untouched on error.
func (l *Library) Apply(name string, mats ...*Material) error {
	tex, err := l.catalog.Get(name)
	if err != nil {
		return fmt.Errorf("surface texture %s: %w", name, err)
	}

	var nrm *texture.Texture
	if l.catalog.Has(name + NormalSuffix) {
		nrm, err = l.catalog.Get(name + NormalSuffix)
		if err != nil {
			if !errors.Is(err, texture.ErrNotFound) {
				logger.Warn("normal map unavailable", zap.String("texture", name), zap.Error(err))
			}
			nrm = nil
		}
	}

	for _, m := range mats {
		if m == nil {
			continue
		}
		m.Map = tex
		m.NormalMap = nrm
		if nrm != nil {
			m.NormalScale = l.normalScale
		}
		m.Version++
	}
	return nil
}
