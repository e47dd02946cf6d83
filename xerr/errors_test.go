package xerr

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	for _, tc := range []struct {
		err *Error

		error string
		json  string
	}{
		{
			err:   Malformed(WithMessage("XML syntax error on line 3"), WithOffset(42)),
			error: "structural error kind:malformed offset:42 XML syntax error on line 3",
			json:  `{"kind":"malformed","offset":42,"message":"XML syntax error on line 3"}`,
		},

		{
			err:   UnmatchedEnd("revision", WithPath("/page")),
			error: "structural error kind:unmatched-end tag:revision path:/page",
			json:  `{"kind":"unmatched-end","tag":"revision","path":"/page"}`,
		},

		{
			err:   OutsideRecord("title"),
			error: "structural error kind:outside-record tag:title",
			json:  `{"kind":"outside-record","tag":"title"}`,
		},

		{
			err:   NestedRecord("page", WithPath("/page/revision")),
			error: "structural error kind:nested-record tag:page path:/page/revision",
			json:  `{"kind":"nested-record","tag":"page","path":"/page/revision"}`,
		},

		{
			err:   TooDeep("contributor", 2),
			error: "structural error kind:too-deep tag:contributor depth limit 2",
			json:  `{"kind":"too-deep","tag":"contributor","message":"depth limit 2"}`,
		},

		{
			err:   Truncated("page"),
			error: "structural error kind:truncated tag:page",
			json:  `{"kind":"truncated","tag":"page"}`,
		},
	} {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			check := assert.New(t)
			bJSON, _ := json.Marshal(tc.err)
			check.Equal(tc.error, tc.err.Error())
			check.Equal(tc.json, string(bJSON))

			ev := Error{}
			if check.NoError(json.Unmarshal(bJSON, &ev)) {
				check.Equal(*tc.err, ev)
			}
		})
	}
}

func TestKindUnmarshalText(t *testing.T) {
	check := assert.New(t)
	var k Kind
	check.NoError(k.UnmarshalText([]byte(" too-deep ")))
	check.Equal(KindTooDeep, k)
	check.Error(k.UnmarshalText([]byte("bogus")))
	check.Equal("Kind(99)", Kind(99).String())
}

func TestIsStructural(t *testing.T) {
	check := assert.New(t)

	wrapped := errors.Wrap(errors.WithStack(UnmatchedEnd("contributor")), "page 12")
	e, ok := IsStructural(wrapped)
	if check.True(ok) {
		check.Equal(KindUnmatchedEnd, e.Kind)
		check.Equal("contributor", e.Tag)
	}

	_, ok = IsStructural(io.EOF)
	check.False(ok)
	_, ok = IsStructural(nil)
	check.False(ok)
}
