package ebpf

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type CfgSuite struct{}

func TestCfg(t *testing.T) {
	suite.RunTests(t, &CfgSuite{})
}

func (CfgSuite) TestLabelPresentAndMissing(t *testing.T) {
	nodes := CfgNodes{
		7: CfgNode{Label: "loop"},
	}

	label, ok := nodes.Label(7)
	expect.True(t, ok)
	expect.Equal(t, "loop", label)

	_, ok = nodes.Label(8)
	expect.False(t, ok)
}
