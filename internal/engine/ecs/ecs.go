package ecs

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ComponentID уникально идентифицирует тип компонента
type ComponentID string

// EntityID уникально идентифицирует сущность
type EntityID string

// Component базовый интерфейс всех компонентов
type Component interface {
	Type() ComponentID
}

// Entity игровая сущность: набор компонентов и тегов
type Entity struct {
	ID         EntityID
	components map[ComponentID]Component
	tags       map[string]bool
	world      *World
}

// NewEntity создает сущность с новым UUID
func NewEntity() *Entity {
	return &Entity{
		ID:         EntityID(uuid.NewString()),
		components: make(map[ComponentID]Component),
		tags:       make(map[string]bool),
	}
}

// AddComponent добавляет (или заменяет) компонент
func (e *Entity) AddComponent(c Component) {
	e.components[c.Type()] = c
	if e.world != nil {
		e.world.reindex(e, c.Type(), true)
	}
}

// RemoveComponent удаляет компонент по типу
func (e *Entity) RemoveComponent(id ComponentID) {
	if _, ok := e.components[id]; !ok {
		return
	}
	delete(e.components, id)
	if e.world != nil {
		e.world.reindex(e, id, false)
	}
}

// GetComponent возвращает компонент указанного типа
func (e *Entity) GetComponent(id ComponentID) (Component, bool) {
	c, ok := e.components[id]
	return c, ok
}

// HasComponent проверяет наличие компонента
func (e *Entity) HasComponent(id ComponentID) bool {
	_, ok := e.components[id]
	return ok
}

// AddTag помечает сущность тегом
func (e *Entity) AddTag(tag string) {
	e.tags[tag] = true
}

// HasTag проверяет тег
func (e *Entity) HasTag(tag string) bool {
	return e.tags[tag]
}

// Get достает компонент нужного типа без ручного приведения
func Get[T Component](e *Entity, id ComponentID) (T, bool) {
	var zero T
	c, ok := e.GetComponent(id)
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// System обрабатывает сущности каждый кадр
type System interface {
	Update(deltaTime float64)
	RequiredComponents() []ComponentID
}

// World хранит сущности и системы
type World struct {
	mu          sync.RWMutex
	entities    map[EntityID]*Entity
	byComponent map[ComponentID]map[EntityID]*Entity
	systems     []System
	pending     []EntityID
}

// NewWorld создает пустой мир
func NewWorld() *World {
	return &World{
		entities:    make(map[EntityID]*Entity),
		byComponent: make(map[ComponentID]map[EntityID]*Entity),
	}
}

// AddEntity регистрирует сущность и индексирует ее компоненты
func (w *World) AddEntity(e *Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entities[e.ID] = e
	e.world = w
	for id := range e.components {
		w.index(e, id, true)
	}
}

// RemoveEntity удаляет сущность немедленно
func (w *World) RemoveEntity(id EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return
	}
	for compID := range e.components {
		w.index(e, compID, false)
	}
	delete(w.entities, id)
	e.world = nil
}

// QueueRemoval откладывает удаление до конца кадра, чтобы не ломать обход
func (w *World) QueueRemoval(id EntityID) {
	w.mu.Lock()
	w.pending = append(w.pending, id)
	w.mu.Unlock()
}

// Flush удаляет сущности, поставленные в очередь
func (w *World) Flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, id := range pending {
		w.RemoveEntity(id)
	}
}

// GetEntity возвращает сущность по ID
func (w *World) GetEntity(id EntityID) (*Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, ok := w.entities[id]
	return e, ok
}

// Len количество живых сущностей
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Query возвращает сущности со всеми указанными компонентами.
// Порядок стабилен (по ID), чтобы кадры были детерминированы.
func (w *World) Query(ids ...ComponentID) []*Entity {
	if len(ids) == 0 {
		return nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	// Начинаем с самого маленького индекса
	smallest := w.byComponent[ids[0]]
	for _, id := range ids[1:] {
		if set := w.byComponent[id]; len(set) < len(smallest) {
			smallest = set
		}
	}

	out := make([]*Entity, 0, len(smallest))
	for _, e := range smallest {
		match := true
		for _, id := range ids {
			if !e.HasComponent(id) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddSystem добавляет систему; системы обновляются в порядке добавления
func (w *World) AddSystem(s System) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.systems = append(w.systems, s)
}

// Update прогоняет все системы и затем удаляет отложенные сущности
func (w *World) Update(deltaTime float64) {
	w.mu.RLock()
	systems := append([]System(nil), w.systems...)
	w.mu.RUnlock()

	for _, s := range systems {
		s.Update(deltaTime)
	}
	w.Flush()
}

func (w *World) reindex(e *Entity, id ComponentID, add bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.index(e, id, add)
}

func (w *World) index(e *Entity, id ComponentID, add bool) {
	if !add {
		delete(w.byComponent[id], e.ID)
		return
	}
	set, ok := w.byComponent[id]
	if !ok {
		set = make(map[EntityID]*Entity)
		w.byComponent[id] = set
	}
	set[e.ID] = e
}

// BaseComponent дает готовую реализацию Type()
type BaseComponent struct {
	TypeID ComponentID
}

// Type возвращает ID типа компонента
func (bc *BaseComponent) Type() ComponentID {
	return bc.TypeID
}

// NewBaseComponent создает базовый компонент указанного типа
func NewBaseComponent(typeID ComponentID) BaseComponent {
	return BaseComponent{TypeID: typeID}
}

// RegisterComponentType возвращает ID для имени компонента
func RegisterComponentType(name string) ComponentID {
	return ComponentID(name)
}
