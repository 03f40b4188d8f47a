package libdiff

import "testing"

func TestTexts(t *testing.T) {
	for _, tt := range []struct {
		name string
		a, b string
		want string
	}{
		{
			name: "equal",
			a:    "one\ntwo\n",
			b:    "one\ntwo\n",
			want: "",
		},
		{
			name: "changed line",
			a:    "one\ntwo\nthree\n",
			b:    "one\n2\nthree\n",
			want: "  one\n- two\n+ 2\n  three\n",
		},
		{
			name: "no trailing newline",
			a:    "x",
			b:    "y",
			want: "- x\n+ y\n",
		},
		{
			name: "appended line",
			a:    "a\n",
			b:    "a\nb\n",
			want: "  a\n+ b\n",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := Texts(tt.a, tt.b); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
