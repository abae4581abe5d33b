// Package ecs provides ECS adapters for rampart's routed event stream.
//
// The primary adapter is [NewDonburiSink], which bridges routed UI events
// (downs, clicks, scrolls) into a [Donburi] world as typed events. Subscribe
// to [UIEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	mgr.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
