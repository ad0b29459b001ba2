// Package export serializes enhanced metadata records to the two
// supported XML metadata standards. The two codecs are independent; their
// schemas diverge enough that sharing structure would obscure both.
package export

import (
	"encoding/xml"
	"log/slog"
	"os"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

// FGDC document shape: flat nested tags, no namespaces.

type fgdcDocument struct {
	XMLName  xml.Name     `xml:"metadata"`
	IDInfo   fgdcIDInfo   `xml:"idinfo"`
	DataQual fgdcDataQual `xml:"dataqual"`
}

type fgdcIDInfo struct {
	Citation fgdcCitation  `xml:"citation"`
	Descript fgdcDescript  `xml:"descript"`
	TimeInfo fgdcTimeInfo  `xml:"timeinfo"`
	Keywords *fgdcKeywords `xml:"keywords,omitempty"`
	SpDom    *fgdcSpDom    `xml:"spdom,omitempty"`
	PtContac *fgdcContact  `xml:"ptcontac,omitempty"`
}

type fgdcCitation struct {
	CiteInfo fgdcCiteInfo `xml:"citeinfo"`
}

type fgdcCiteInfo struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubdate,omitempty"`
}

type fgdcDescript struct {
	Abstract string `xml:"abstract,omitempty"`
	Purpose  string `xml:"purpose,omitempty"`
}

type fgdcTimeInfo struct {
	SngDate fgdcSngDate `xml:"sngdate"`
}

type fgdcSngDate struct {
	CalDate string `xml:"caldate,omitempty"`
}

type fgdcKeywords struct {
	Theme fgdcTheme `xml:"theme"`
}

type fgdcTheme struct {
	ThemeKeys []string `xml:"themekey"`
}

type fgdcSpDom struct {
	Bounding fgdcBounding `xml:"bounding"`
}

type fgdcBounding struct {
	WestBC  float64 `xml:"westbc"`
	EastBC  float64 `xml:"eastbc"`
	NorthBC float64 `xml:"northbc"`
	SouthBC float64 `xml:"southbc"`
}

type fgdcContact struct {
	CntInfo fgdcCntInfo `xml:"cntinfo"`
}

type fgdcCntInfo struct {
	CntOrg   string       `xml:"cntorg,omitempty"`
	CntPerp  *fgdcCntPerp `xml:"cntperp,omitempty"`
	CntEmail string       `xml:"cntemail,omitempty"`
}

type fgdcCntPerp struct {
	CntPer string `xml:"cntper"`
}

type fgdcDataQual struct {
	Lineage  *fgdcLineage  `xml:"lineage,omitempty"`
	PosAccr  *fgdcPosAccr  `xml:"posaccr,omitempty"`
	AttrAccr *fgdcAttrAccr `xml:"attraccr,omitempty"`
	Complete *fgdcComplete `xml:"complete,omitempty"`
}

type fgdcLineage struct {
	ProcStep string `xml:"procstep"`
}

type fgdcPosAccr struct {
	HorizPA string `xml:"horizpa"`
}

type fgdcAttrAccr struct {
	AttrAcc string `xml:"attracc"`
}

type fgdcComplete struct {
	CompleteInfo string `xml:"completeinfo"`
}

// ToFGDC serializes the record to FGDC XML at outputPath. Failures are
// logged and reported through the return flag; callers must treat a false
// result as "output state unknown".
func ToFGDC(record *model.EnhancedMetadata, outputPath string) bool {
	doc := fgdcDocument{
		IDInfo: fgdcIDInfo{
			Citation: fgdcCitation{CiteInfo: fgdcCiteInfo{
				Title:   record.Title,
				PubDate: record.PublicationDate,
			}},
			Descript: fgdcDescript{
				Abstract: record.Abstract,
				Purpose:  record.Purpose,
			},
		},
	}

	if record.CreationDate != "" {
		// Only the date portion of a full timestamp.
		doc.IDInfo.TimeInfo.SngDate.CalDate, _, _ = strings.Cut(record.CreationDate, "T")
	}

	if len(record.Keywords) > 0 {
		doc.IDInfo.Keywords = &fgdcKeywords{Theme: fgdcTheme{ThemeKeys: record.Keywords}}
	}

	if record.HasBBox() {
		doc.IDInfo.SpDom = &fgdcSpDom{Bounding: fgdcBounding{
			WestBC:  *record.BBoxWest,
			EastBC:  *record.BBoxEast,
			NorthBC: *record.BBoxNorth,
			SouthBC: *record.BBoxSouth,
		}}
	}

	if record.ContactOrganization != "" || record.ContactPerson != "" {
		contact := &fgdcContact{CntInfo: fgdcCntInfo{
			CntOrg:   record.ContactOrganization,
			CntEmail: record.ContactEmail,
		}}
		if record.ContactPerson != "" {
			contact.CntInfo.CntPerp = &fgdcCntPerp{CntPer: record.ContactPerson}
		}
		doc.IDInfo.PtContac = contact
	}

	if record.Lineage != "" {
		doc.DataQual.Lineage = &fgdcLineage{ProcStep: record.Lineage}
	}
	if record.PositionalAccuracy != "" {
		doc.DataQual.PosAccr = &fgdcPosAccr{HorizPA: record.PositionalAccuracy}
	}
	if record.AttributeAccuracy != "" {
		doc.DataQual.AttrAccr = &fgdcAttrAccr{AttrAcc: record.AttributeAccuracy}
	}
	if record.Completeness != "" {
		doc.DataQual.Complete = &fgdcComplete{CompleteInfo: record.Completeness}
	}

	return writeXML(doc, outputPath, "FGDC")
}

// writeXML serializes a document tree as indented XML.
func writeXML(doc any, outputPath, schema string) bool {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		slog.Error("Failed to build metadata document", "schema", schema, "error", err)
		return false
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(outputPath, out, 0o600); err != nil {
		slog.Error("Failed to write metadata document", "schema", schema, "path", outputPath, "error", err)
		return false
	}
	return true
}
