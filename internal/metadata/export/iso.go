package export

import (
	"encoding/xml"
	"path/filepath"
	"time"

	"github.com/geoshelf/geoshelf/internal/model"
)

// ISO 19115/19139 document shape: namespace-qualified elements with
// gco-wrapped values and codelist attributes.

type isoDocument struct {
	XMLName        xml.Name         `xml:"MD_Metadata"`
	Xmlns          string           `xml:"xmlns,attr"`
	XmlnsGco       string           `xml:"xmlns:gco,attr"`
	XmlnsGts       string           `xml:"xmlns:gts,attr"`
	XmlnsXsi       string           `xml:"xmlns:xsi,attr"`
	FileID         isoCharString    `xml:"fileIdentifier"`
	Language       isoCharString    `xml:"language"`
	Hierarchy      isoCharString    `xml:"hierarchyLevel"`
	Contact        *isoContact      `xml:"contact,omitempty"`
	DateStamp      isoDateTime      `xml:"dateStamp"`
	StdName        isoCharString    `xml:"metadataStandardName"`
	StdVersion     isoCharString    `xml:"metadataStandardVersion"`
	Identification isoIdentInfo     `xml:"identificationInfo"`
	DataQuality    *isoDataQuality  `xml:"dataQualityInfo,omitempty"`
	Distribution   *isoDistribution `xml:"distributionInfo,omitempty"`
}

type isoCharString struct {
	Value string `xml:"gco:CharacterString"`
}

type isoDateTime struct {
	Value string `xml:"gco:DateTime"`
}

type isoDecimal struct {
	Value float64 `xml:"gco:Decimal"`
}

type isoContact struct {
	Party isoResponsibleParty `xml:"CI_ResponsibleParty"`
}

type isoResponsibleParty struct {
	IndividualName   *isoCharString  `xml:"individualName,omitempty"`
	OrganisationName *isoCharString  `xml:"organisationName,omitempty"`
	ContactInfo      *isoContactInfo `xml:"contactInfo,omitempty"`
	Role             isoRole         `xml:"role"`
}

type isoContactInfo struct {
	Contact isoCIContact `xml:"CI_Contact"`
}

type isoCIContact struct {
	Address isoAddressWrap `xml:"address"`
}

type isoAddressWrap struct {
	Address isoAddress `xml:"CI_Address"`
}

type isoAddress struct {
	Email isoCharString `xml:"electronicMailAddress"`
}

type isoRole struct {
	Code isoCodeValue `xml:"CI_RoleCode"`
}

type isoCodeValue struct {
	CodeList      string `xml:"codeList,attr"`
	CodeListValue string `xml:"codeListValue,attr"`
	Value         string `xml:",chardata"`
}

type isoIdentInfo struct {
	DataIdent isoDataIdent `xml:"MD_DataIdentification"`
}

type isoDataIdent struct {
	Citation isoCitationWrap `xml:"citation"`
	Abstract *isoCharString  `xml:"abstract,omitempty"`
	Purpose  *isoCharString  `xml:"purpose,omitempty"`
	Keywords *isoKeywords    `xml:"descriptiveKeywords,omitempty"`
	Extent   *isoExtent      `xml:"extent,omitempty"`
}

type isoCitationWrap struct {
	Citation isoCitation `xml:"CI_Citation"`
}

type isoCitation struct {
	Title isoCharString `xml:"title"`
	Date  *isoDateWrap  `xml:"date,omitempty"`
}

type isoDateWrap struct {
	Date isoCIDate `xml:"CI_Date"`
}

type isoCIDate struct {
	Date     isoDateTime  `xml:"date"`
	DateType isoDateType  `xml:"dateType"`
}

type isoDateType struct {
	Code isoCodeValue `xml:"CI_DateTypeCode"`
}

type isoKeywords struct {
	Keywords isoMDKeywords `xml:"MD_Keywords"`
}

type isoMDKeywords struct {
	Keyword []isoCharString `xml:"keyword"`
}

type isoExtent struct {
	Extent isoEXExtent `xml:"EX_Extent"`
}

type isoEXExtent struct {
	Geographic isoGeographicElement `xml:"geographicElement"`
}

type isoGeographicElement struct {
	BBox isoBoundingBox `xml:"EX_GeographicBoundingBox"`
}

type isoBoundingBox struct {
	West  isoDecimal `xml:"westBoundLongitude"`
	East  isoDecimal `xml:"eastBoundLongitude"`
	South isoDecimal `xml:"southBoundLatitude"`
	North isoDecimal `xml:"northBoundLatitude"`
}

type isoDataQuality struct {
	Quality isoDQDataQuality `xml:"DQ_DataQuality"`
}

type isoDQDataQuality struct {
	Scope   isoScope    `xml:"scope"`
	Lineage *isoLineage `xml:"lineage,omitempty"`
}

type isoScope struct {
	Scope isoDQScope `xml:"DQ_Scope"`
}

type isoDQScope struct {
	Level isoScopeLevel `xml:"level"`
}

type isoScopeLevel struct {
	Code isoCodeValue `xml:"MD_ScopeCode"`
}

type isoLineage struct {
	Lineage isoLILineage `xml:"LI_Lineage"`
}

type isoLILineage struct {
	Statement isoCharString `xml:"statement"`
}

type isoDistribution struct {
	Distribution isoMDDistribution `xml:"MD_Distribution"`
}

type isoMDDistribution struct {
	Format   *isoFormatWrap   `xml:"distributionFormat,omitempty"`
	Transfer *isoTransferWrap `xml:"transferOptions,omitempty"`
}

type isoFormatWrap struct {
	Format isoMDFormat `xml:"MD_Format"`
}

type isoMDFormat struct {
	Name isoCharString `xml:"name"`
}

type isoTransferWrap struct {
	Options isoTransferOptions `xml:"MD_DigitalTransferOptions"`
}

type isoTransferOptions struct {
	OnLine isoOnLine `xml:"onLine"`
}

type isoOnLine struct {
	Resource isoOnlineResource `xml:"CI_OnlineResource"`
}

type isoOnlineResource struct {
	Linkage isoCharString `xml:"linkage"`
}

const (
	gmdNamespace = "http://www.isotc211.org/2005/gmd"
	gcoNamespace = "http://www.isotc211.org/2005/gco"
	gtsNamespace = "http://www.isotc211.org/2005/gts"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

	codelists = "http://www.isotc211.org/2005/resources/Codelist/gmxCodelists.xml"
)

// ToISO serializes the record to ISO 19115 XML at outputPath. Same
// failure policy as ToFGDC.
func ToISO(record *model.EnhancedMetadata, outputPath string) bool {
	doc := isoDocument{
		Xmlns:      gmdNamespace,
		XmlnsGco:   gcoNamespace,
		XmlnsGts:   gtsNamespace,
		XmlnsXsi:   xsiNamespace,
		FileID:     isoCharString{Value: filepath.Base(outputPath)},
		Language:   isoCharString{Value: "eng"},
		Hierarchy:  isoCharString{Value: "dataset"},
		StdName:    isoCharString{Value: "ISO 19115:2003/19139"},
		StdVersion: isoCharString{Value: "1.0"},
	}

	if record.ContactOrganization != "" || record.ContactPerson != "" {
		party := isoResponsibleParty{
			Role: isoRole{Code: isoCodeValue{
				CodeList:      codelists + "#CI_RoleCode",
				CodeListValue: "originator",
				Value:         "originator",
			}},
		}
		if record.ContactPerson != "" {
			party.IndividualName = &isoCharString{Value: record.ContactPerson}
		}
		if record.ContactOrganization != "" {
			party.OrganisationName = &isoCharString{Value: record.ContactOrganization}
		}
		if record.ContactEmail != "" {
			party.ContactInfo = &isoContactInfo{Contact: isoCIContact{
				Address: isoAddressWrap{Address: isoAddress{
					Email: isoCharString{Value: record.ContactEmail},
				}},
			}}
		}
		doc.Contact = &isoContact{Party: party}
	}

	if record.CreationDate != "" {
		doc.DateStamp = isoDateTime{Value: record.CreationDate}
	} else {
		doc.DateStamp = isoDateTime{Value: time.Now().UTC().Format(time.RFC3339)}
	}

	ident := isoDataIdent{
		Citation: isoCitationWrap{Citation: isoCitation{
			Title: isoCharString{Value: record.Title},
		}},
	}

	if record.PublicationDate != "" || record.CreationDate != "" {
		useDate := record.PublicationDate
		if useDate == "" {
			useDate = record.CreationDate
		}
		ident.Citation.Citation.Date = &isoDateWrap{Date: isoCIDate{
			Date: isoDateTime{Value: useDate},
			DateType: isoDateType{Code: isoCodeValue{
				CodeList:      codelists + "#CI_DateTypeCode",
				CodeListValue: "publication",
				Value:         "publication",
			}},
		}}
	}

	if record.Abstract != "" {
		ident.Abstract = &isoCharString{Value: record.Abstract}
	}
	if record.Purpose != "" {
		ident.Purpose = &isoCharString{Value: record.Purpose}
	}

	if len(record.Keywords) > 0 {
		keywords := make([]isoCharString, len(record.Keywords))
		for i, k := range record.Keywords {
			keywords[i] = isoCharString{Value: k}
		}
		ident.Keywords = &isoKeywords{Keywords: isoMDKeywords{Keyword: keywords}}
	}

	if record.HasBBox() {
		ident.Extent = &isoExtent{Extent: isoEXExtent{
			Geographic: isoGeographicElement{BBox: isoBoundingBox{
				West:  isoDecimal{Value: *record.BBoxWest},
				East:  isoDecimal{Value: *record.BBoxEast},
				South: isoDecimal{Value: *record.BBoxSouth},
				North: isoDecimal{Value: *record.BBoxNorth},
			}},
		}}
	}
	doc.Identification = isoIdentInfo{DataIdent: ident}

	if record.Lineage != "" || record.PositionalAccuracy != "" ||
		record.AttributeAccuracy != "" || record.Completeness != "" {
		quality := isoDQDataQuality{
			Scope: isoScope{Scope: isoDQScope{Level: isoScopeLevel{
				Code: isoCodeValue{
					CodeList:      codelists + "#MD_ScopeCode",
					CodeListValue: "dataset",
					Value:         "dataset",
				},
			}}},
		}
		if record.Lineage != "" {
			quality.Lineage = &isoLineage{Lineage: isoLILineage{
				Statement: isoCharString{Value: record.Lineage},
			}}
		}
		doc.DataQuality = &isoDataQuality{Quality: quality}
	}

	if record.DistributionFormat != "" || record.OnlineResource != "" {
		dist := isoMDDistribution{}
		if record.DistributionFormat != "" {
			dist.Format = &isoFormatWrap{Format: isoMDFormat{
				Name: isoCharString{Value: record.DistributionFormat},
			}}
		}
		if record.OnlineResource != "" {
			dist.Transfer = &isoTransferWrap{Options: isoTransferOptions{
				OnLine: isoOnLine{Resource: isoOnlineResource{
					Linkage: isoCharString{Value: record.OnlineResource},
				}},
			}}
		}
		doc.Distribution = &isoDistribution{Distribution: dist}
	}

	return writeXML(doc, outputPath, "ISO 19115")
}
