package enrichers

import (
	"os"
	"sync"

	"github.com/willibrandon/msgtmpl/core"
)

// MachineNameEnricher adds the host name as the MachineName property.
type MachineNameEnricher struct {
	once        sync.Once
	machineName string
}

// NewMachineNameEnricher creates a machine name enricher.
func NewMachineNameEnricher() *MachineNameEnricher {
	return &MachineNameEnricher{}
}

// Enrich adds the machine name, resolved on first use.
func (m *MachineNameEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	m.once.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		m.machineName = hostname
	})
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("MachineName", m.machineName))
}
