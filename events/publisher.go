package events

import (
	"blog/config"
	"blog/models"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nsqio/go-nsq"
)

type Publisher interface {
	Publish(ev PostPublished) error
	Stop()
}

// Clients holds the live feed sockets of this instance
var Clients = NewHub()

var defaultPublisher Publisher = &LocalPublisher{Hub: Clients}

// Init switches to NSQ fan-out when an nsqd address is configured
func Init() {
	if config.NSQD_ADDR == "" {
		defaultPublisher = &LocalPublisher{Hub: Clients}
		return
	}
	p, err := NewNSQPublisher(config.NSQD_ADDR, config.NSQ_TOPIC, config.INSTANCE_ID, Clients)
	if err != nil {
		panic(err)
	}
	defaultPublisher = p
	log.Printf("Post events via nsqd %s, topic %s\n", config.NSQD_ADDR, config.NSQ_TOPIC)
}

func SetPublisher(p Publisher) {
	defaultPublisher = p
}

func Stop() {
	defaultPublisher.Stop()
}

// PublishPost notifies the followers of the post's author, errors are only logged
func PublishPost(post *models.Post) {
	ev := NewPostPublished(post)
	ev.Origin = config.INSTANCE_ID
	if err := defaultPublisher.Publish(ev); err != nil {
		log.Printf("Cannot publish post %d: %v", post.ID, err)
	}
}

// Deliver sends the event to the connected followers of its author
func Deliver(hub *Hub, ev PostPublished) (int, error) {
	followers, err := models.FollowerIDs(ev.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("followers of %d: %w", ev.AuthorID, err)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range followers {
		sent += hub.SendToUser(id, data)
	}
	return sent, nil
}

// LocalPublisher delivers in-process, for single instance deployments
type LocalPublisher struct {
	Hub *Hub
}

func (p *LocalPublisher) Publish(ev PostPublished) error {
	_, err := Deliver(p.Hub, ev)
	return err
}

func (p *LocalPublisher) Stop() {}

// NSQPublisher publishes to a topic every instance consumes from its own channel,
// so followers connected to any instance are notified
type NSQPublisher struct {
	Topic    string
	hub      *Hub
	producer *nsq.Producer
	consumer *nsq.Consumer
}

func NewNSQPublisher(addr, topic, instanceID string, hub *Hub) (*NSQPublisher, error) {
	cfg := nsq.NewConfig()
	producer, err := nsq.NewProducer(addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("nsq producer: %w", err)
	}
	consumer, err := nsq.NewConsumer(topic, instanceID+"#ephemeral", cfg)
	if err != nil {
		producer.Stop()
		return nil, fmt.Errorf("nsq consumer: %w", err)
	}
	p := &NSQPublisher{
		Topic:    topic,
		hub:      hub,
		producer: producer,
		consumer: consumer,
	}
	consumer.AddHandler(p)
	if err = consumer.ConnectToNSQD(addr); err != nil {
		p.Stop()
		return nil, fmt.Errorf("nsq connect %s: %w", addr, err)
	}
	return p, nil
}

func (p *NSQPublisher) Publish(ev PostPublished) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.producer.Publish(p.Topic, data)
}

// HandleMessage implements nsq.Handler
func (p *NSQPublisher) HandleMessage(m *nsq.Message) error {
	var ev PostPublished
	if err := json.Unmarshal(m.Body, &ev); err != nil {
		log.Printf("Dropping malformed post event: %v", err)
		return nil
	}
	if ev.Type != TypePostPublished {
		return nil
	}
	_, err := Deliver(p.hub, ev)
	return err
}

func (p *NSQPublisher) Stop() {
	p.consumer.Stop()
	<-p.consumer.StopChan
	p.producer.Stop()
}
