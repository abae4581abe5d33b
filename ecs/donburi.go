package ecs

import (
	"github.com/11EJDE11/rampart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// UIEventType is the Donburi event type for rampart routed events. Subscribe
// to this in your ECS systems to receive every down, click, and scroll the
// router dispatches, including which control it targeted and whether a
// control handled it.
var UIEventType = events.NewEventType[rampart.RoutedEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Routed
// events are published to UIEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) rampart.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) HandleEvent(event rampart.RoutedEvent) {
	UIEventType.Publish(s.world, event)
}
