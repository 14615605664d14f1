package world

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/power"
	"github.com/darkbibni/Substanz/internal/world/levels"
)

var (
	// ErrUnknownPower уровень ссылается на несуществующую силу
	ErrUnknownPower = errors.New("unknown power")
	// ErrEmptyLevel в уровне нет ни стен, ни объектов
	ErrEmptyLevel = errors.New("level is empty")
)

// Vec точка или размер в плоскости
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vector3 в координатах движка
func (v Vec) Vector3() ecs.Vector3 {
	return ecs.Vector3{X: v.X, Y: v.Y}
}

// Zone круг (Radius) или прямоугольник (Size) с центром At
type Zone struct {
	At     Vec     `yaml:"at"`
	Radius float64 `yaml:"radius"`
	Size   Vec     `yaml:"size"`
}

// PowerPickup открывает слот пушки
type PowerPickup struct {
	Zone  `yaml:",inline"`
	Power string `yaml:"power"`
	index int
}

// Index номер слота после проверки уровня
func (p PowerPickup) Index() int { return p.index }

// Offset начальные смещения каналов трансформируемого объекта
type Offset struct {
	Location Vec     `yaml:"location"`
	Rotation float64 `yaml:"rotation"` // градусы рыскания
	Scale    float64 `yaml:"scale"`    // равномерно по осям
}

// Prop трансформируемый объект
type Prop struct {
	Name     string   `yaml:"name"`
	At       Vec      `yaml:"at"`
	Yaw      float64  `yaml:"yaw"`
	Size     Vec      `yaml:"size"`
	Scale    float64  `yaml:"scale"`
	Offset   Offset   `yaml:"offset"`
	Duration *float64 `yaml:"duration"`
}

// Box прямоугольник стены
type Box struct {
	At   Vec `yaml:"at"`
	Size Vec `yaml:"size"`
}

// Level описание уровня
type Level struct {
	Name           string        `yaml:"name"`
	Spawn          Vec           `yaml:"spawn"`
	Gun            *Zone         `yaml:"gun"`
	Powers         []PowerPickup `yaml:"powers"`
	Transformables []Prop        `yaml:"transformables"`
	Walls          []Box         `yaml:"walls"`
	Checkpoints    []Zone        `yaml:"checkpoints"`
	Barriers       []Zone        `yaml:"barriers"`
	Hazards        []Zone        `yaml:"hazards"`
}

// Значения по умолчанию для объектов уровня
const (
	defaultPropSize   = 100.0
	defaultZoneRadius = 32.0
)

// LoadLevel читает уровень с диска или из встроенных
func LoadLevel(name string) (*Level, error) {
	data, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	return ParseLevel(data)
}

// ParseLevel разбирает YAML и проверяет уровень
func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if len(l.Walls) == 0 && len(l.Transformables) == 0 {
		return ErrEmptyLevel
	}

	for i := range l.Powers {
		idx, err := parsePower(l.Powers[i].Power)
		if err != nil {
			return fmt.Errorf("powers[%d]: %w", i, err)
		}
		l.Powers[i].index = idx
	}

	for i := range l.Transformables {
		p := &l.Transformables[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("prop-%d", i)
		}
		if p.Size.X <= 0 {
			p.Size.X = defaultPropSize
		}
		if p.Size.Y <= 0 {
			p.Size.Y = defaultPropSize
		}
		if p.Scale <= 0 {
			p.Scale = 1
		}
	}

	if l.Gun != nil {
		l.Gun.defaults()
	}
	for _, zones := range [][]Zone{l.Checkpoints, l.Barriers, l.Hazards} {
		for i := range zones {
			zones[i].defaults()
		}
	}
	for i := range l.Powers {
		l.Powers[i].Zone.defaults()
	}
	return nil
}

func (z *Zone) defaults() {
	if z.Radius <= 0 && (z.Size.X <= 0 || z.Size.Y <= 0) {
		z.Radius = defaultZoneRadius
	}
}

// Contains лежит ли точка внутри зоны
func (z Zone) Contains(p ecs.Vector3) bool {
	dx, dy := p.X-z.At.X, p.Y-z.At.Y
	if z.Size.X > 0 && z.Size.Y > 0 {
		return dx >= -z.Size.X/2 && dx <= z.Size.X/2 &&
			dy >= -z.Size.Y/2 && dy <= z.Size.Y/2
	}
	return dx*dx+dy*dy <= z.Radius*z.Radius
}

// parsePower принимает имя силы или ее номер
func parsePower(s string) (int, error) {
	for i, name := range power.Names {
		if s == name {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < power.SlotCount {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPower, s)
}
