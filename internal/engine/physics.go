package engine

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
)

// Hit результат запроса к физическому пространству
type Hit struct {
	Entity ecs.EntityID
	Point  ecs.Vector3
	Normal ecs.Vector3
	Alpha  float64 // доля отрезка до точки попадания
}

// bodyInfo тело и форма одной сущности
type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	width  float64
	height float64
}

// Space плоскость XY поверх Chipmunk: стены статичны, трансформируемые
// объекты кинематические и двигаются геймплеем
type Space struct {
	space  *cp.Space
	bodies map[ecs.EntityID]*bodyInfo
}

// NewSpace создает пустое пространство без гравитации
func NewSpace() *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &Space{
		space:  space,
		bodies: make(map[ecs.EntityID]*bodyInfo),
	}
}

// AddStatic добавляет неподвижный прямоугольник с центром center
func (s *Space) AddStatic(id ecs.EntityID, center, size ecs.Vector3) {
	s.Remove(id)

	bb := cp.BB{
		L: center.X - size.X/2,
		B: center.Y - size.Y/2,
		R: center.X + size.X/2,
		T: center.Y + size.Y/2,
	}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.UserData = id
	s.space.AddShape(shape)

	s.bodies[id] = &bodyInfo{
		body:   s.space.StaticBody,
		shape:  shape,
		static: true,
		width:  size.X,
		height: size.Y,
	}
}

// AddKinematic добавляет тело, которое двигает геймплей
func (s *Space) AddKinematic(id ecs.EntityID, center ecs.Vector3, angle float64, size ecs.Vector3) {
	s.Remove(id)

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	body.SetAngle(angle)
	s.space.AddBody(body)

	info := &bodyInfo{body: body}
	s.bodies[id] = info
	s.reshape(id, info, size)
}

// Move переносит кинематическое тело. Если изменился габарит, форма
// пересоздается, поскольку полигоны Chipmunk не масштабируются.
// Запросы видят новую позицию только после Step.
func (s *Space) Move(id ecs.EntityID, center ecs.Vector3, angle float64, size ecs.Vector3) {
	info, ok := s.bodies[id]
	if !ok || info.static {
		return
	}
	info.body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	info.body.SetAngle(angle)

	if !sameSize(info.width, size.X) || !sameSize(info.height, size.Y) {
		s.reshape(id, info, size)
	}
}

// Step пересчитывает геометрию и индекс форм подвижных тел. Скорости
// кинематических тел нулевые, поэтому шаг их не сдвигает. Chipmunk
// игнорирует нулевой шаг, так что dt <= 0 заменяется на refreshStep.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		dt = refreshStep
	}
	s.space.Step(dt)
}

func (s *Space) reshape(id ecs.EntityID, info *bodyInfo, size ecs.Vector3) {
	if info.shape != nil {
		s.space.RemoveShape(info.shape)
	}
	w, h := math.Max(math.Abs(size.X), minExtent), math.Max(math.Abs(size.Y), minExtent)
	shape := cp.NewBox(info.body, w, h, 0)
	shape.UserData = id
	s.space.AddShape(shape)

	info.shape = shape
	info.width = size.X
	info.height = size.Y
}

// Remove убирает тело сущности, если оно есть
func (s *Space) Remove(id ecs.EntityID) {
	info, ok := s.bodies[id]
	if !ok {
		return
	}
	if info.shape != nil {
		s.space.RemoveShape(info.shape)
	}
	if !info.static {
		s.space.RemoveBody(info.body)
	}
	delete(s.bodies, id)
}

// Has есть ли у сущности тело
func (s *Space) Has(id ecs.EntityID) bool {
	_, ok := s.bodies[id]
	return ok
}

// Len количество тел
func (s *Space) Len() int {
	return len(s.bodies)
}

// Raycast первое тело на отрезке from -> to
func (s *Space) Raycast(from, to ecs.Vector3) (Hit, bool) {
	return s.Sweep(from, to, 0)
}

// Sweep как Raycast, но отрезок утолщен до radius (для снарядов)
func (s *Space) Sweep(from, to ecs.Vector3, radius float64) (Hit, bool) {
	if from.Distance(to) == 0 {
		return Hit{}, false
	}
	info := s.space.SegmentQueryFirst(
		cp.Vector{X: from.X, Y: from.Y},
		cp.Vector{X: to.X, Y: to.Y},
		radius,
		cp.SHAPE_FILTER_ALL,
	)
	if info.Shape == nil {
		return Hit{}, false
	}
	id, ok := info.Shape.UserData.(ecs.EntityID)
	if !ok {
		return Hit{}, false
	}
	// Если отрезок начинается внутри формы, Chipmunk отдает Alpha 0 и
	// конец отрезка в Point, поэтому точка считается по Alpha
	return Hit{
		Entity: id,
		Point:  from.Lerp(to, info.Alpha),
		Normal: ecs.Vector3{X: info.Normal.X, Y: info.Normal.Y},
		Alpha:  info.Alpha,
	}, true
}

const (
	// minExtent не дает форме выродиться в точку при нулевом масштабе
	minExtent = 1.0
	// refreshStep шаг для Step вне кадра
	refreshStep = 1.0 / 60
)

func sameSize(a, b float64) bool {
	return math.Abs(a-b) <= ecs.NearlyZeroTolerance
}
