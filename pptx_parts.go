package merkdown

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relCore        = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	ctBase         = "application/vnd.openxmlformats-officedocument.presentationml."
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

type pptxRect struct {
	X, Y, CX, CY int
}

type pptxLayoutDef struct {
	Name    string
	Type    string
	TitlePh string
	BodyPh  string
	Title   pptxRect
	Body    pptxRect
}

// Geometry is in EMU on a 10in x 7.5in (4:3) slide.
var pptxLayouts = map[PPTXLayout]pptxLayoutDef{
	LayoutTitle: {
		Name:    "Title Slide",
		Type:    "title",
		TitlePh: `type="ctrTitle"`,
		BodyPh:  `type="subTitle" idx="1"`,
		Title:   pptxRect{685800, 2130425, 7772400, 1470025},
		Body:    pptxRect{1371600, 3886200, 6400800, 1752600},
	},
	LayoutBullets: {
		Name:    "Title and Content",
		Type:    "obj",
		TitlePh: `type="title"`,
		BodyPh:  `idx="1"`,
		Title:   pptxRect{457200, 274638, 8229600, 1143000},
		Body:    pptxRect{457200, 1600200, 8229600, 4525963},
	},
	LayoutSection: {
		Name:    "Section Header",
		Type:    "secHead",
		TitlePh: `type="title"`,
		Title:   pptxRect{722313, 4406900, 7772400, 1362075},
	},
}

var pptxLayoutOrder = []PPTXLayout{LayoutTitle, LayoutBullets, LayoutSection}

type packagePart struct {
	name string
	data []byte
}

var packageFuncs = template.FuncMap{
	"xml":        xmlEscape,
	"outlineXML": outlineXML,
	"add":        func(a, b int) int { return a + b },
	"lvl":        clampLevel,
}

func clampLevel(level int) int {
	if level > maxParagraphLevel {
		return maxParagraphLevel
	}
	return level
}

func xmlEscape(s string) string {
	buf := &bytes.Buffer{}
	// EscapeText only fails if the writer does.
	_ = xml.EscapeText(buf, []byte(s))
	return buf.String()
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(packageFuncs).Parse(text))
}

var contentTypesTmpl = mustTemplate("contentTypes", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="`+ctBase+`presentation.main+xml"/>
<Override PartName="/ppt/presProps.xml" ContentType="`+ctBase+`presProps+xml"/>
<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="`+ctBase+`slideMaster+xml"/>
{{- range $i, $l := .Layouts }}
<Override PartName="/ppt/slideLayouts/slideLayout{{ add $i 1 }}.xml" ContentType="`+ctBase+`slideLayout+xml"/>
{{- end }}
{{- range $i, $s := .Slides }}
<Override PartName="/ppt/slides/slide{{ add $i 1 }}.xml" ContentType="`+ctBase+`slide+xml"/>
{{- end }}
<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`)

var rootRelsTmpl = mustTemplate("rootRels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="`+relBase+`officeDocument" Target="ppt/presentation.xml"/>
<Relationship Id="rId2" Type="`+relCore+`" Target="docProps/core.xml"/>
</Relationships>`)

var corePropsTmpl = mustTemplate("core", `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>{{ xml .Title }}</dc:title>
<dc:creator>{{ xml .Creator }}</dc:creator>
</cp:coreProperties>`)

// Relationship ids: rId1 master, rId2 theme, rId3 presProps, slides from rId4.
var presentationTmpl = mustTemplate("presentation", `<p:presentation xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`" saveSubsetFonts="1">
<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
<p:sldIdLst>
{{- range $i, $s := .Slides }}<p:sldId id="{{ add $i 256 }}" r:id="rId{{ add $i 4 }}"/>{{ end -}}
</p:sldIdLst>
<p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
<p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`)

var presentationRelsTmpl = mustTemplate("presentationRels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="`+relBase+`slideMaster" Target="slideMasters/slideMaster1.xml"/>
<Relationship Id="rId2" Type="`+relBase+`theme" Target="theme/theme1.xml"/>
<Relationship Id="rId3" Type="`+relBase+`presProps" Target="presProps.xml"/>
{{- range $i, $s := .Slides }}
<Relationship Id="rId{{ add $i 4 }}" Type="`+relBase+`slide" Target="slides/slide{{ add $i 1 }}.xml"/>
{{- end }}
</Relationships>`)

const presPropsXML = `<p:presentationPr xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"/>`

const spTreeHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const xfrmTmpl = `{{ define "xfrm" }}<p:spPr><a:xfrm><a:off x="{{ .X }}" y="{{ .Y }}"/><a:ext cx="{{ .CX }}" cy="{{ .CY }}"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>{{ end }}`

var masterTmpl = mustTemplate("master", xfrmTmpl+`<p:sldMaster xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`">
<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>`+spTreeHeader+`
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>{{ template "xfrm" .Title }}<p:txBody><a:bodyPr anchor="ctr"/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US"/><a:t>Click to edit Master title style</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Text Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>{{ template "xfrm" .Body }}<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:pPr lvl="0"/><a:r><a:rPr lang="en-US"/><a:t>Click to edit Master text styles</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
<p:sldLayoutIdLst>
{{- range $i, $l := .Layouts }}<p:sldLayoutId id="{{ add $i 2147483649 }}" r:id="rId{{ add $i 1 }}"/>{{ end -}}
</p:sldLayoutIdLst>
<p:txStyles>
<p:titleStyle><a:lvl1pPr algn="ctr"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>
<p:bodyStyle>{{ .BodyLevels }}</p:bodyStyle>
<p:otherStyle><a:defPPr><a:defRPr lang="en-US"/></a:defPPr></p:otherStyle>
</p:txStyles>
</p:sldMaster>`)

var masterRelsTmpl = mustTemplate("masterRels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
{{- range $i, $l := .Layouts }}
<Relationship Id="rId{{ add $i 1 }}" Type="`+relBase+`slideLayout" Target="../slideLayouts/slideLayout{{ add $i 1 }}.xml"/>
{{- end }}
<Relationship Id="rId{{ add (len .Layouts) 1 }}" Type="`+relBase+`theme" Target="../theme/theme1.xml"/>
</Relationships>`)

var layoutTmpl = mustTemplate("layout", xfrmTmpl+`<p:sldLayout xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`" type="{{ .Type }}" preserve="1">
<p:cSld name="{{ .Name }}"><p:spTree>`+spTreeHeader+`
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph {{ .TitlePh }}/></p:nvPr></p:nvSpPr>{{ template "xfrm" .Title }}<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>
{{- if .BodyPh }}
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Body 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph {{ .BodyPh }}/></p:nvPr></p:nvSpPr>{{ template "xfrm" .Body }}<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>
{{- end }}
</p:spTree></p:cSld>
<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sldLayout>`)

var layoutRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="` + relBase + `slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`

const paragraphTmpl = `{{ define "paragraph" }}<a:p>
{{- if .Level }}<a:pPr lvl="{{ lvl .Level }}"/>{{ end -}}
{{- if .Text }}<a:r><a:rPr lang="en-US" dirty="0"/><a:t>{{ xml .Text }}</a:t></a:r>{{ else }}<a:endParaRPr lang="en-US"/>{{ end -}}
</a:p>{{ end }}`

var slideTmpl = mustTemplate("slide", paragraphTmpl+`<p:sld xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`">
<p:cSld><p:spTree>`+spTreeHeader+`
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph {{ .Def.TitlePh }}/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>{{ template "paragraph" .TitleParagraph }}</p:txBody></p:sp>
{{- if .Slide.Body }}
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Body 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph {{ .Def.BodyPh }}/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>
{{- range .Slide.Body.Paragraphs }}{{ template "paragraph" . }}{{ end -}}
</p:txBody></p:sp>
{{- end }}
</p:spTree></p:cSld>
<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sld>`)

var slideRelsTmpl = mustTemplate("slideRels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="`+relBase+`slideLayout" Target="../slideLayouts/slideLayout{{ . }}.xml"/>
</Relationships>`)

const themeXML = `<a:theme xmlns:a="` + nsA + `" name="Office Theme"><a:themeElements>
<a:clrScheme name="Office">
<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
<a:dk2><a:srgbClr val="1F497D"/></a:dk2><a:lt2><a:srgbClr val="EEECE1"/></a:lt2>
<a:accent1><a:srgbClr val="4F81BD"/></a:accent1><a:accent2><a:srgbClr val="C0504D"/></a:accent2>
<a:accent3><a:srgbClr val="9BBB59"/></a:accent3><a:accent4><a:srgbClr val="8064A2"/></a:accent4>
<a:accent5><a:srgbClr val="4BACC6"/></a:accent5><a:accent6><a:srgbClr val="F79646"/></a:accent6>
<a:hlink><a:srgbClr val="0000FF"/></a:hlink><a:folHlink><a:srgbClr val="800080"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Office">
<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
</a:fontScheme>
<a:fmtScheme name="Office">
<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>
<a:lnStyleLst><a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>
<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>
<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>
</a:fmtScheme>
</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`

// bodyLevels renders the master list styles for all nine outline levels.
func bodyLevels() string {
	sizes := []int{3200, 2800, 2400, 2000, 2000, 2000, 2000, 2000, 2000}
	bullets := []string{"•", "–", "•", "–", "»", "•", "•", "•", "•"}
	var b strings.Builder
	for i := 0; i <= maxParagraphLevel; i++ {
		fmt.Fprintf(&b, `<a:lvl%dpPr marL="%d" indent="-342900" algn="l"><a:spcBef><a:spcPct val="20000"/></a:spcBef>`+
			`<a:buFont typeface="Arial"/><a:buChar char="%s"/><a:defRPr sz="%d"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>`+
			`<a:latin typeface="+mn-lt"/></a:defRPr></a:lvl%dpPr>`,
			i+1, 342900+i*400050, bullets[i], sizes[i], i+1)
	}
	return b.String()
}

type slideView struct {
	Def            pptxLayoutDef
	Slide          *PPTXSlide
	TitleParagraph *PPTXParagraph
}

func execute(tmpl *template.Template, data interface{}) ([]byte, error) {
	buf := bytes.NewBufferString(xmlDeclaration)
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// parts lays out every file of the package in write order.
func (d *PPTXDeck) parts() ([]packagePart, error) {
	layouts := make([]pptxLayoutDef, 0, len(pptxLayoutOrder))
	for _, l := range pptxLayoutOrder {
		layouts = append(layouts, pptxLayouts[l])
	}
	view := struct {
		*PPTXDeck
		Layouts    []pptxLayoutDef
		Title      pptxRect
		Body       pptxRect
		BodyLevels string
	}{
		PPTXDeck:   d,
		Layouts:    layouts,
		Title:      pptxLayouts[LayoutBullets].Title,
		Body:       pptxLayouts[LayoutBullets].Body,
		BodyLevels: bodyLevels(),
	}

	var parts []packagePart
	add := func(name string, tmpl *template.Template, data interface{}) error {
		buf, err := execute(tmpl, data)
		if err != nil {
			return err
		}
		parts = append(parts, packagePart{name: name, data: buf})
		return nil
	}
	addRaw := func(name, data string) {
		parts = append(parts, packagePart{name: name, data: []byte(xmlDeclaration + data)})
	}

	if err := add("[Content_Types].xml", contentTypesTmpl, view); err != nil {
		return nil, err
	}
	if err := add("_rels/.rels", rootRelsTmpl, nil); err != nil {
		return nil, err
	}
	if err := add("docProps/core.xml", corePropsTmpl, d); err != nil {
		return nil, err
	}
	if err := add("ppt/presentation.xml", presentationTmpl, d); err != nil {
		return nil, err
	}
	if err := add("ppt/_rels/presentation.xml.rels", presentationRelsTmpl, d); err != nil {
		return nil, err
	}
	addRaw("ppt/presProps.xml", presPropsXML)
	addRaw("ppt/theme/theme1.xml", themeXML)
	if err := add("ppt/slideMasters/slideMaster1.xml", masterTmpl, view); err != nil {
		return nil, err
	}
	if err := add("ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsTmpl, view); err != nil {
		return nil, err
	}
	for i, l := range layouts {
		if err := add(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), layoutTmpl, l); err != nil {
			return nil, err
		}
		addRaw(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), layoutRelsXML)
	}
	for i, s := range d.Slides {
		sv := slideView{
			Def:            pptxLayouts[s.Layout],
			Slide:          s,
			TitleParagraph: &PPTXParagraph{Text: s.Title},
		}
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideTmpl, sv); err != nil {
			return nil, err
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsTmpl, int(s.Layout)+1); err != nil {
			return nil, err
		}
	}
	return parts, nil
}
