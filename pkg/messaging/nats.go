package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// AlertStreamName 预警事件流名称
const AlertStreamName = "ALERTS"

// SubjectNAVAlert 净值预警事件主题
const SubjectNAVAlert = "alerts.nav"

// NATSClient NATS JetStream客户端
type NATSClient struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
}

// MessageHandler 通用消息处理函数类型
type MessageHandler func(data []byte) error

// NewNATSClient 创建新的NATS客户端
func NewNATSClient(natsURL string) (*NATSClient, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &NATSClient{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
	}

	// 初始化预警事件流
	if err := client.setupAlertStream(); err != nil {
		log.Printf("警告: 设置预警事件流失败: %v", err)
	}

	return client, nil
}

// setupAlertStream 设置预警事件流
func (c *NATSClient) setupAlertStream() error {
	config := jetstream.StreamConfig{
		Name:        AlertStreamName,
		Subjects:    []string{"alerts.*"},
		Description: "净值预警事件流",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     50000,
		MaxBytes:    50 * 1024 * 1024,   // 50MB
		MaxAge:      7 * 24 * time.Hour, // 保留7天
	}

	if _, err := c.jetStream.CreateOrUpdateStream(c.ctx, config); err != nil {
		return fmt.Errorf("创建/更新Stream %s 失败: %w", config.Name, err)
	}

	log.Printf("Stream %s 设置成功", config.Name)
	return nil
}

// Publish 发布消息到指定主题
func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	if _, err := c.jetStream.Publish(c.ctx, subject, payload); err != nil {
		return fmt.Errorf("发布消息到 %s 失败: %w", subject, err)
	}

	log.Printf("发布消息到主题: %s, 数据大小: %d bytes", subject, len(payload))
	return nil
}

// Subscribe 订阅指定主题的消息
func (c *NATSClient) Subscribe(consumerName, filterSubject string, handler MessageHandler) error {
	consumerConfig := jetstream.ConsumerConfig{
		Name:          consumerName,
		Description:   fmt.Sprintf("%s 消费者", consumerName),
		FilterSubject: filterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	}

	consumer, err := c.jetStream.CreateOrUpdateConsumer(c.ctx, AlertStreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("创建消费者 %s 失败: %w", consumerName, err)
	}

	go c.consumeMessages(consumer, consumerName, handler)

	log.Printf("已订阅 %s (Stream: %s, Consumer: %s)", filterSubject, AlertStreamName, consumerName)
	return nil
}

// consumeMessages 拉取并处理消息
func (c *NATSClient) consumeMessages(consumer jetstream.Consumer, consumerName string, handler MessageHandler) {
	iter, err := consumer.Messages(jetstream.PullMaxMessages(10))
	if err != nil {
		log.Printf("获取 %s 消息迭代器失败: %v", consumerName, err)
		return
	}
	defer iter.Stop()

	for {
		select {
		case <-c.ctx.Done():
			log.Printf("消费者 %s 收到停止信号", consumerName)
			return
		default:
			msg, err := iter.Next()
			if err != nil {
				if err == jetstream.ErrNoMessages {
					continue
				}
				log.Printf("获取 %s 消息失败: %v", consumerName, err)
				time.Sleep(1 * time.Second)
				continue
			}

			// 处理失败拒绝消息，成功则确认
			if err := handler(msg.Data()); err != nil {
				log.Printf("消费者 %s 处理消息失败: %v", consumerName, err)
				msg.Nak()
			} else {
				msg.Ack()
			}
		}
	}
}

// IsConnected 检查连接状态
func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close 关闭连接
func (c *NATSClient) Close() error {
	log.Println("正在关闭NATS连接...")

	c.cancel() // 取消所有上下文

	// 等待消费者退出
	time.Sleep(1 * time.Second)

	if c.conn != nil {
		c.conn.Close()
	}

	log.Println("NATS连接已关闭")
	return nil
}
