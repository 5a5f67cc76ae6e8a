package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"cyrillic bold typo",
			"<б>Привет</б>",
			"<b>Привет</b>",
		},
		{
			"allowed tags kept",
			"<b>x</b> <i>y</i> <code>z</code> <blockquote>q</blockquote>",
			"<b>x</b> <i>y</i> <code>z</code> <blockquote>q</blockquote>",
		},
		{
			"anchor with attributes kept",
			`<a href="https://www.sefaria.org">Sefaria</a>`,
			`<a href="https://www.sefaria.org">Sefaria</a>`,
		},
		{
			"list markup becomes bullets",
			"<ul><li>один</li><li>два</li></ul>",
			"• один\n• два\n",
		},
		{
			"paragraphs and breaks become newlines",
			"<p>раз</p><br>два<br/>три",
			"раз\n\nдва\nтри",
		},
		{
			"unknown tags stripped with attributes",
			`<div class="x">text</div> <span>more</span>`,
			"text more",
		},
		{
			"script stripped but content kept",
			"<script>alert(1)</script>",
			"alert(1)",
		},
		{
			"plain text untouched",
			"Шалом, 15 Нисана 5784",
			"Шалом, 15 Нисана 5784",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTelegramHTML(tt.in))
		})
	}
}
