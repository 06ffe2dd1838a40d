package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const DefaultLendingTopic = "library.lending"

type Config struct {
	Addrs        []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	LendingTopic string   `yaml:"lendingTopic" envconfig:"KAFKA_LENDING_TOPIC" default:"library.lending"`
}

func (cfg Config) Enabled() bool {
	return len(cfg.Addrs) > 0
}

func newSaramaConfig() *sarama.Config {
	c := sarama.NewConfig()
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Return.Successes = true
	c.Producer.Retry.Max = 3
	c.Producer.Timeout = 5 * time.Second
	c.Net.DialTimeout = 5 * time.Second
	return c
}

func NewSyncProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, newSaramaConfig())
}

// CreateTopics makes sure the lending topic exists. An already existing topic is not an error.
func CreateTopics(cfg Config) error {
	admin, err := sarama.NewClusterAdmin(cfg.Addrs, newSaramaConfig())
	if err != nil {
		return errors.Wrap(err, "sarama.NewClusterAdmin")
	}
	defer admin.Close()

	err = admin.CreateTopic(cfg.LendingTopic, &sarama.TopicDetail{
		NumPartitions:     3,
		ReplicationFactor: 1,
	}, false)
	if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
		return errors.Wrapf(err, "create topic %s", cfg.LendingTopic)
	}
	return nil
}
