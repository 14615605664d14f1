package transformable

import "github.com/darkbibni/Substanz/internal/engine/ecs"

// Component attaches a Transformable to an entity.
type Component struct {
	ecs.BaseComponent
	Name  string
	Props *Transformable
}

// NewComponent wraps t for the entity world.
func NewComponent(name string, t *Transformable) *Component {
	return &Component{
		BaseComponent: ecs.NewBaseComponent(ecs.TransformableComponentID),
		Name:          name,
		Props:         t,
	}
}

// Sync copies the blended pose into the entity transform.
func (c *Component) Sync(tr *ecs.TransformComponent) {
	p := c.Props.Pose()
	tr.Position = p.Location
	tr.Rotation = p.Rotation
	tr.Scale = p.Scale
}
