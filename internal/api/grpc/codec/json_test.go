package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type message struct {
	Token string `json:"token"`
}

func TestJSON_Registered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestJSON_MarshalUnmarshal(t *testing.T) {
	c := JSON{}

	b, err := c.Marshal(&message{Token: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(b))

	var got message
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "abc", got.Token)
}

func TestJSON_UnmarshalEmptyBody(t *testing.T) {
	var got message
	require.NoError(t, JSON{}.Unmarshal(nil, &got))
	assert.Empty(t, got.Token)
}

func TestJSON_UnmarshalGarbage(t *testing.T) {
	var got message
	require.Error(t, JSON{}.Unmarshal([]byte("{"), &got))
}

func TestJSON_MarshalUnsupported(t *testing.T) {
	_, err := JSON{}.Marshal(make(chan int))
	require.Error(t, err)
}
