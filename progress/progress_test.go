package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCapturesEvents(t *testing.T) {
	rec := &Recorder{}

	Infof(rec, "test", "starting %s", "run")
	Warnf(rec, "test", "something odd")
	Warnf(rec, "test", "still odd")
	Errorf(rec, "test", "broke")

	assert.Len(t, rec.Events, 4)
	assert.Equal(t, Event{Info, "test", "starting run"}, rec.Events[0])
	assert.Equal(t, 2, rec.Count(Warn))
	assert.Equal(t, 1, rec.Count(Error))
	assert.Zero(t, rec.Count(Success))
}
