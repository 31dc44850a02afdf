package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Generate_ShouldLowercaseAndHyphenate(t *testing.T) {

	assert.Equal(t, "senior-go-developer", Generate("Senior Go Developer"))
	assert.Equal(t, "c-net-engineer", Generate("C#/.NET Engineer!!"))
	assert.Equal(t, "devops-aws", Generate("  DevOps --- (AWS)  "))
}

func Test_Generate_ShouldBeIdempotent(t *testing.T) {

	titles := []string{"Node.js developer", "QA — Manual & Automation", "data scientist"}

	for _, title := range titles {
		once := Generate(title)
		assert.Equal(t, once, Generate(once))
	}
}

func Test_Generate_ShouldProduceOnlyLowercaseASCIIAndHyphens(t *testing.T) {

	allowed := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	titles := []string{"Senior Go Developer", "C++ (embedded)", "100% remote!", "a"}
	for _, title := range titles {
		assert.Regexp(t, allowed, Generate(title))
	}
}

func Test_Generate_ShouldNeverReturnEmpty(t *testing.T) {
	assert.NotEmpty(t, Generate("!!!"))
	assert.NotEmpty(t, Generate("---"))
}
