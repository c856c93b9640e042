package markup

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Vocabulary(t *testing.T) {
	out := New().
		Heading(2, "Planet").
		Field("Gravity", "High").
		Section("Territories", []string{"Forest", "Swamp"}).
		Paragraph("Quiet & cold").
		PageRef("Stars of Inequity, p. 18").
		String()

	assert.Contains(t, out, "<h2>Planet</h2>")
	assert.Contains(t, out, "<p><strong>Gravity:</strong> High</p>")
	assert.Contains(t, out, "<h3>Territories</h3><ul><li>Forest</li><li>Swamp</li></ul>")
	assert.Contains(t, out, "<p>Quiet &amp; cold</p>")
	assert.Contains(t, out, `<span class="page-ref">Stars of Inequity, p. 18</span>`)

	tags := regexp.MustCompile(`</?([a-z0-9]+)`).FindAllStringSubmatch(out, -1)
	allowed := map[string]bool{"h2": true, "h3": true, "p": true, "ul": true, "li": true, "strong": true, "span": true}
	for _, m := range tags {
		assert.True(t, allowed[m[1]], "unexpected tag %s", m[1])
	}
}

func TestBuilder_SkipsEmpty(t *testing.T) {
	out := New().Paragraph("").Field("Empty", "").List(nil).Section("None", nil).PageRef("").String()
	assert.Empty(t, out)
}

func TestBuilder_EscapesUserText(t *testing.T) {
	out := New().Heading(3, "<script>").String()
	assert.Equal(t, "<h3>&lt;script&gt;</h3>", out)
}
