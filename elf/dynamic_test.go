package elf

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type DynamicSuite struct{}

func TestDynamic(t *testing.T) {
	suite.RunTests(t, &DynamicSuite{})
}

func (DynamicSuite) TestLastWriteWins(t *testing.T) {
	table := &DynamicTable{}
	table.set(DTRel, 100)
	table.set(DTRel, 200)

	value, ok := table.Get(DTRel)
	expect.True(t, ok)
	expect.Equal(t, uint64(200), value)
}

func (DynamicSuite) TestMissingTagNotPresent(t *testing.T) {
	table := &DynamicTable{}
	_, ok := table.Get(DTSymTab)
	expect.False(t, ok)
}

func (DynamicSuite) TestOutOfRangeTagIgnored(t *testing.T) {
	table := &DynamicTable{}
	table.set(DynTag(DTNum+1), 42)

	_, ok := table.Get(DynTag(DTNum + 1))
	expect.False(t, ok)
}

func (DynamicSuite) TestElf64RelAccessors(t *testing.T) {
	rel := Elf64Rel{Info: (uint64(7) << 32) | uint64(3)}
	expect.Equal(t, uint32(3), rel.Type())
	expect.Equal(t, uint32(7), rel.Symbol())
}
