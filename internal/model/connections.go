package model

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// Conn is the write side of an observer's websocket.
type Conn interface {
	WriteJSON(v interface{}) error
}

// observer serializes writes to its connection: a websocket accepts one
// writer at a time.
type observer struct {
	mu      sync.Mutex
	conn    Conn
	flipped bool
}

func (o *observer) write(v interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.conn.WriteJSON(v)
}

// GameConnections holds the observers of a single game.
type GameConnections struct {
	observers map[string]*observer // observerID -> connection
	mu        sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		observers: make(map[string]*observer),
	}
}

// add registers the connection unless the observer already has one.
func (gc *GameConnections) add(observerID string, conn Conn, flipped bool) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.observers[observerID]; exists {
		return false
	}
	gc.observers[observerID] = &observer{conn: conn, flipped: flipped}
	return true
}

func (gc *GameConnections) get(observerID string) (*observer, bool) {
	gc.mu.RLock()
	defer gc.mu.RUnlock()

	o, ok := gc.observers[observerID]
	return o, ok
}

// write sends v to a single observer.
func (gc *GameConnections) write(observerID string, v interface{}) error {
	o, ok := gc.get(observerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObserver, observerID)
	}
	return o.write(v)
}

func (gc *GameConnections) remove(observerID string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	delete(gc.observers, observerID)
}

func (gc *GameConnections) Size() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()

	return len(gc.observers)
}

// broadcast writes the message built for each observer's orientation and drops
// the observers whose connection failed.
func (gc *GameConnections) broadcast(message func(flipped bool) interface{}) {
	gc.mu.RLock()
	snapshot := make(map[string]*observer, len(gc.observers))
	for id, o := range gc.observers {
		snapshot[id] = o
	}
	gc.mu.RUnlock()

	failed := map[string]*observer{}
	for id, o := range snapshot {
		if err := o.write(message(o.flipped)); err != nil {
			log.Warnf("dropping observer %s: %v", id, err)
			failed[id] = o
		}
	}
	if len(failed) == 0 {
		return
	}

	gc.mu.Lock()
	for id, o := range failed {
		// The id may have reconnected meanwhile.
		if gc.observers[id] == o {
			delete(gc.observers, id)
		}
	}
	gc.mu.Unlock()
}
