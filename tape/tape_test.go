package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeVia struct {
	edges []bool
}

func (f *fakeVia) WriteCB1(v bool) { f.edges = append(f.edges, v) }

func buildTAP(name string, body []byte) []byte {
	data := []byte{0x16, 0x16, 0x16, 0x24, 0x00, 0x00, 0x80, 0xC7}
	data = append(data, 0x06, 0x00) // end address 0x0600
	data = append(data, 0x05, 0x00) // start address 0x0500
	data = append(data, 0x00)       // reserved
	data = append(data, []byte(name)...)
	data = append(data, 0x00) // NUL terminator
	data = append(data, body...)
	return data
}

func TestHeaderParsing(t *testing.T) {
	via := &fakeVia{}
	raw := buildTAP("HELLO", []byte{0xAA})
	d, err := Attach(via, raw)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	h := d.Header()
	assert.Equal(t, "HELLO", h.Name)
	assert.Equal(t, uint16(0x0500), h.StartAddress)
	assert.Equal(t, uint16(0x0600), h.EndAddress)
	assert.Equal(t, uint8(TypeCode), h.Type)
	assert.Equal(t, uint8(AutorunCode), h.Autorun)
}

func TestMissingSyncMarkerRejected(t *testing.T) {
	via := &fakeVia{}
	_, err := Attach(via, []byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
	assert.IsType(t, BadTapFile{}, err)
}

func TestStepProducesCB1Edges(t *testing.T) {
	via := &fakeVia{}
	raw := buildTAP("X", []byte{0x00})
	d, err := Attach(via, raw)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	d.SetMotor(true)
	for i := 0; i < 5000; i++ {
		d.Step(1)
	}
	assert.NotEmpty(t, via.edges, "expected CB1 toggles once the motor is running")
}

func TestMotorOffProducesNoEdges(t *testing.T) {
	via := &fakeVia{}
	raw := buildTAP("X", []byte{0x00})
	d, err := Attach(via, raw)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	d.Step(1000) // Motor never started.
	assert.Empty(t, via.edges)
}
