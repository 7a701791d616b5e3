package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/zond/tabletop"
	"github.com/zond/tabletop/color"
	"github.com/zond/tabletop/transcript"
)

var (
	ErrNameTaken = fmt.Errorf("that name is already in use")
)

// Transcript keeps the lines broadcast to the whole instance.
type Transcript interface {
	Record(ctx context.Context, speaker string, text string) error
	Recent(ctx context.Context, n int) ([]transcript.Entry, error)
}

// Instance is the shared broadcast domain: the connected entities plus the
// painted scene and objects.
type Instance struct {
	connections *tabletop.SyncMap[string, *Entity]
	transcript  Transcript

	mu         sync.Mutex
	sceneTitle string
	sceneBody  string
	objects    map[string]string
}

func NewInstance(t Transcript) *Instance {
	return &Instance{
		connections: tabletop.NewSyncMap[string, *Entity](),
		transcript:  t,
		objects:     map[string]string{},
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Join adds e to the connections. Names are unique regardless of case.
func (i *Instance) Join(e *Entity) error {
	if e.instance != i {
		return fmt.Errorf("%q belongs to another instance", e.name)
	}
	if e.Masked() {
		return fmt.Errorf("masked identities can't join")
	}
	if !i.connections.SetIfAbsent(key(e.name), e) {
		return tabletop.WithStack(ErrNameTaken)
	}
	return nil
}

// Leave removes e from the connections and marks it departed. It reports
// whether e was connected.
func (i *Instance) Leave(e *Entity) bool {
	if !i.connections.DelIf(key(e.name), e) {
		return false
	}
	e.depart()
	return true
}

// Connections returns a snapshot of the connected entities sorted by name.
func (i *Instance) Connections() []*Entity {
	snapshot := i.connections.Clone()
	result := make([]*Entity, 0, len(snapshot))
	for _, e := range snapshot {
		result = append(result, e)
	}
	sort.Slice(result, func(a, b int) bool {
		return key(result[a].name) < key(result[b].name)
	})
	return result
}

// Find returns the connected entity called name, ignoring case.
func (i *Instance) Find(name string) (*Entity, bool) {
	return i.connections.GetHas(key(name))
}

// Broadcast sends format(recipient) to every connected entity audience
// accepts. The connection set is snapshotted before iterating, so
// concurrent joins and leaves never disturb it. Empty texts are not sent.
func (i *Instance) Broadcast(audience Audience, format func(recipient *Entity) string) {
	for _, e := range i.connections.Clone() {
		if audience != nil && !audience(e) {
			continue
		}
		if text := format(e); text != "" {
			e.Send(text)
		}
	}
}

// Announce tells everyone about something actor did: actor gets self,
// everybody else gets others. The others form goes to the transcript.
func (i *Instance) Announce(ctx context.Context, actor *Entity, self string, others string) {
	i.Broadcast(Everyone, func(recipient *Entity) string {
		if recipient == actor {
			return self
		}
		return others
	})
	i.record(ctx, actor, others)
}

// Shout sends the same text to everyone.
func (i *Instance) Shout(ctx context.Context, actor *Entity, text string) {
	i.Announce(ctx, actor, text, text)
}

func (i *Instance) record(ctx context.Context, actor *Entity, text string) {
	if i.transcript == nil || text == "" {
		return
	}
	speaker := ""
	if actor != nil {
		speaker = actor.name
	}
	if err := i.transcript.Record(ctx, speaker, color.Strip(text)); err != nil {
		log.Printf("recording transcript: %v", err)
	}
}

// Recent returns the n latest transcript entries.
func (i *Instance) Recent(ctx context.Context, n int) ([]transcript.Entry, bool, error) {
	if i.transcript == nil {
		return nil, false, nil
	}
	entries, err := i.transcript.Recent(ctx, n)
	if err != nil {
		return nil, true, tabletop.WithStack(err)
	}
	return entries, true, nil
}

func (i *Instance) PaintSceneTitle(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sceneTitle = text
}

func (i *Instance) PaintSceneBody(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sceneBody = text
}

func (i *Instance) PaintObject(tag string, text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.objects[key(tag)] = text
}

// EraseObject removes the object tagged tag, reporting whether it existed.
func (i *Instance) EraseObject(tag string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, found := i.objects[key(tag)]; !found {
		return false
	}
	delete(i.objects, key(tag))
	return true
}

func (i *Instance) WipeScene() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sceneTitle = ""
	i.sceneBody = ""
}

// Wipe clears the scene and every object in one step.
func (i *Instance) Wipe() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sceneTitle = ""
	i.sceneBody = ""
	i.objects = map[string]string{}
}

// ViewScene renders title and body, or returns "" if both are unset.
func (i *Instance) ViewScene() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	parts := []string{}
	if i.sceneTitle != "" {
		parts = append(parts, i.sceneTitle)
	}
	if i.sceneBody != "" {
		parts = append(parts, i.sceneBody)
	}
	return strings.Join(parts, "\n")
}

// ViewObject returns the description of tag, ignoring case, or "".
func (i *Instance) ViewObject(tag string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.objects[key(tag)]
}

// ObjectTags returns the sorted tags of all painted objects.
func (i *Instance) ObjectTags() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	result := make([]string, 0, len(i.objects))
	for tag := range i.objects {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
