package notify

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type publishCall struct {
	topic    string
	qos      byte
	retained bool
	payload  interface{}
}

type fakeClient struct {
	token        *fakeToken
	published    []publishCall
	disconnected bool
}

func (client *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	client.published = append(client.published, publishCall{topic, qos, retained, payload})
	return client.token
}

func (client *fakeClient) Disconnect(uint) {
	client.disconnected = true
}

type fakeToken struct {
	err     error
	timeout bool
}

func (token *fakeToken) Wait() bool {
	return !token.timeout
}

func (token *fakeToken) WaitTimeout(time.Duration) bool {
	return !token.timeout
}

func (token *fakeToken) Done() <-chan struct{} {
	done := make(chan struct{})
	if !token.timeout {
		close(done)
	}
	return done
}

func (token *fakeToken) Error() error {
	return token.err
}
