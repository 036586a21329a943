package parser_test

import (
	"strings"

	"github.com/myusername/match-report-scraper/pkg/parser"
)

// sampleReport is the text layer of a two-page report as the PDF extractor returns it
const sampleReport = `Handball-Verband Beispiel
Liga A, Spiel Nr. 123 am 01.01.24
Halle: Sporthalle Nord
Heim: TV Musterstadt
"Nr.","Spielername","Tore"
"7","Max Mustermann","5"
"12","Jan Beispiel","2"
Mannschaftsverantwortliche
Gast: HSG Beispielhausen
Nr. Spielername Tore
3 Paul Probe 4
21 Karl Test 0
"Endstand","3:1 (1:0), Sieger TV Musterstadt"
` + "\f" + `Spielverlauf
18:00:05 00:00 Anpfiff
18:05:10 05:05 1:0 Tor durch 7
18:20:00 20:00 Auszeit Gast
18:40:02 40:02 3:1 Tor durch 12
`

const sampleHTML = `<!DOCTYPE html>
<html><body>
<h1>Liga A, Spiel Nr. 123 am 01.01.24</h1>
<table>
<tr><td>Heim: TV Musterstadt</td></tr>
<tr><th>Nr.</th><th>Spielername</th><th>Tore</th></tr>
<tr><td>7</td><td>Max Mustermann</td><td>5</td></tr>
<tr><td>Gast: HSG Beispielhausen</td></tr>
<tr><th>Nr.</th><th>Spielername</th></tr>
<tr><td>3</td><td>Paul Probe</td></tr>
<tr><td>Endstand</td><td>3:1 (1:0), Sieger TV Musterstadt</td></tr>
</table>
<h2>Spielverlauf</h2>
<table>
<tr><td>18:00:05</td><td>00:00</td><td></td><td>Anpfiff</td></tr>
<tr><td>18:05:10</td><td>05:05</td><td>1:0</td><td>Tor durch 7</td></tr>
</table>
</body></html>`

func linesOf(texts ...string) []parser.Line {
	return parser.Segment(strings.Join(texts, "\n"))
}
