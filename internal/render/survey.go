// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/pdiddy/research-assistant/internal/survey"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// surveyBullets is the number of sentences shown per survey field.
const surveyBullets = 5

// RenderSurvey lays out the literature survey as numbered records. Each
// field after the title is a bold label followed by up to five sentence
// bullets.
func (r *PDFRenderer) RenderSurvey(rows []types.SurveyRow) ([]byte, error) {
	p := newPage(survey.Title, r.logger)
	p.pdf.AddPage()
	p.pdf.SetFont(fontFamily, "", headingSize)
	p.pdf.CellFormat(0, lineHeight, survey.Title, "", 1, "C", false, 0, "")
	p.pdf.Ln(lineHeight)

	labels := survey.Columns()
	for i, row := range rows {
		fields := survey.Fields(row)

		p.pdf.SetFont(fontFamily, "B", headingSize)
		p.pdf.MultiCell(0, lineHeight, p.text(fmt.Sprintf("%d. %s", i+1, fields[0])), "", "L", false)
		for j := 1; j < len(labels); j++ {
			p.pdf.SetFont(fontFamily, "B", bodySize)
			p.pdf.MultiCell(0, lineHeight, labels[j]+":", "", "L", false)
			p.pdf.SetFont(fontFamily, "", bodySize)
			p.pdf.MultiCell(0, lineHeight, p.text(survey.Bullets(fields[j], surveyBullets)), "", "L", false)
		}
		p.pdf.Ln(5)
	}
	return p.output()
}
