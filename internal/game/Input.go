package game

// DirectionSource is polled once per tick. PollDirection must not block and
// returns None when no request is pending.
type DirectionSource interface {
	PollDirection() Direction
}

// Renderer receives every frame. It has no write access to the session.
type Renderer interface {
	Render(frame Frame)
}

type RendererFunc func(frame Frame)

func (f RendererFunc) Render(frame Frame) { f(frame) }

// FrameObserver is implemented by direction sources that steer from the last
// frame, such as the autopilots. The driver feeds them every frame.
type FrameObserver interface {
	Observe(frame Frame)
}

const directionBufferSize = 10

// ChannelSource queues direction requests from an input device, one per tick.
type ChannelSource struct {
	DirectionChannel chan Direction
}

func NewChannelSource() *ChannelSource {
	return &ChannelSource{DirectionChannel: make(chan Direction, directionBufferSize)}
}

// Push queues a request and drops it when the buffer is full.
func (c *ChannelSource) Push(d Direction) bool {
	select {
	case c.DirectionChannel <- d:
		return true
	default:
		return false
	}
}

func (c *ChannelSource) PollDirection() Direction {
	select {
	case d := <-c.DirectionChannel:
		return d
	default:
		return None
	}
}

// Clear drops every queued request.
func (c *ChannelSource) Clear() {
	for {
		select {
		case <-c.DirectionChannel:
		default:
			return
		}
	}
}
