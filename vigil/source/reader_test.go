package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloLine = `{"screen_width":1920,"screen_height":1080,"window_width":1280,"window_height":720,"user_agent":"Mozilla/5.0","capabilities":["pointer_move","key_down","clipboard","resize","visibility","focus"]}`

func TestReaderHello(t *testing.T) {
	rd, err := NewReader(strings.NewReader(helloLine + "\n"))
	require.NoError(t, err)

	m := rd.Metrics()
	assert.Equal(t, 1920, m.ScreenWidth)
	assert.Equal(t, 1080, m.ScreenHeight)
	assert.Equal(t, 1280, m.WindowWidth)
	assert.Equal(t, 720, m.WindowHeight)
	assert.Equal(t, "Mozilla/5.0", m.UserAgent)
	assert.Equal(t, AllCaps(), rd.Capabilities())
}

func TestReaderMissingHello(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	require.ErrorIs(t, err, ErrMissingHello)
}

func TestReaderPartialCapabilities(t *testing.T) {
	rd, err := NewReader(strings.NewReader(`{"capabilities":["pointer_move","key_down"]}` + "\n"))
	require.NoError(t, err)
	assert.True(t, rd.Capabilities().Has(ClassPointerMove))
	assert.True(t, rd.Capabilities().Has(ClassKeyDown))
	assert.False(t, rd.Capabilities().Has(ClassClipboard))
}

func TestReaderNotifications(t *testing.T) {
	input := helloLine + "\n" +
		`{"class":"pointer_move","x":10,"y":20}` + "\n" +
		`{"class":"key_down","key_type":"Alt"}` + "\n" +
		`{"class":"clipboard","action":"copy","selection":50}` + "\n" +
		`{"class":"resize","width":800,"height":600}` + "\n" +
		`{"class":"visibility","hidden":true}` + "\n" +
		`{"class":"focus","focused":false}` + "\n" +
		`{"class":"bogus"}` + "\n"

	rd, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	var got []Notification
	for n := range rd.Notifications() {
		got = append(got, n)
	}
	require.NoError(t, rd.Err())

	require.Equal(t, []Notification{
		PointerMove{X: 10, Y: 20},
		KeyDown{KeyType: "Alt"},
		Clipboard{Action: "copy", Selection: 50},
		Resize{Width: 800, Height: 600},
		Visibility{Hidden: true},
		Focus{Focused: false},
	}, got)
}

func TestClassRoundTrip(t *testing.T) {
	for c := ClassPointerMove; c <= ClassFocus; c++ {
		got, ok := classFromString(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	_, ok := classFromString("unknown")
	assert.False(t, ok)
}
