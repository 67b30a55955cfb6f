package bench

// Kind tags a Message. Each kind documents which payload fields it carries.
type Kind uint8

const (
	// KindExhausted: a spawn request stopped early because the creation
	// collaborator refused. Payload: Requested, Created, Population.
	KindExhausted Kind = iota + 1

	// KindPopulationChanged: the live population changed. Payload: Population.
	KindPopulationChanged

	// KindCollectionFull: one pool of a ChainPool is exhausted and the next
	// one takes over. Payload: Collection (index of the full pool), Population.
	KindCollectionFull
)

// Topic returns the stable identifier of the kind.
func (k Kind) Topic() string {
	switch k {
	case KindExhausted:
		return "population_exhausted"
	case KindPopulationChanged:
		return "population_changed"
	case KindCollectionFull:
		return "collection_full"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	return k.Topic()
}

// Message is a tagged notification posted on the Bus.
type Message struct {
	Kind       Kind
	Population int
	Requested  int
	Created    int
	Collection int
}

// Handler receives messages of the kinds it declares.
type Handler interface {
	HandleMessage(msg Message)
	Kinds() []Kind
}

type handlerFunc struct {
	kinds []Kind
	fn    func(Message)
}

func (h handlerFunc) HandleMessage(msg Message) { h.fn(msg) }
func (h handlerFunc) Kinds() []Kind            { return h.kinds }

// HandlerFunc adapts fn into a Handler for the given kinds.
func HandlerFunc(fn func(Message), kinds ...Kind) Handler {
	return handlerFunc{kinds: kinds, fn: fn}
}

// Bus queues messages and delivers them in FIFO order when Dispatch is called.
// It is meant for the single frame-loop goroutine.
type Bus struct {
	handlers map[Kind][]Handler
	queue    []Message
	spare    []Message
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for each of its declared kinds. Handlers of the same
// kind run in subscription order.
func (b *Bus) Subscribe(h Handler) {
	for _, k := range h.Kinds() {
		b.handlers[k] = append(b.handlers[k], h)
	}
}

// Post queues msg for the next Dispatch.
func (b *Bus) Post(msg Message) {
	b.queue = append(b.queue, msg)
}

// Pending returns the number of queued messages.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Dispatch delivers every queued message. Messages posted by handlers during
// dispatch are delivered on the next call.
func (b *Bus) Dispatch() int {
	batch := b.queue
	b.queue = b.spare[:0]

	for _, msg := range batch {
		for _, h := range b.handlers[msg.Kind] {
			h.HandleMessage(msg)
		}
	}

	b.spare = batch[:0]
	return len(batch)
}

// HandlerCount returns the number of handlers registered for k.
func (b *Bus) HandlerCount(k Kind) int {
	return len(b.handlers[k])
}
