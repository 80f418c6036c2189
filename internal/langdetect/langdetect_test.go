package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "We are looking for a backend engineer to join our platform team in Berlin.",
			want: "en",
		},
		{
			name: "german",
			text: "Wir suchen einen erfahrenen Entwickler für unser Team in München, der unsere Dienste betreut.",
			want: "de",
		},
		{
			name: "persian",
			text: "ما به دنبال یک مهندس نرم افزار با تجربه برای تیم خود هستیم که در تهران کار کند",
			want: "fa",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Detect(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectEmptyInput(t *testing.T) {
	d := New()
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := d.Detect(text)
		assert.ErrorIs(t, err, ErrUndetermined)
	}
}
