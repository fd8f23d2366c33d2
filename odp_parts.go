package merkdown

const odpMimeType = "application/vnd.oasis.opendocument.presentation"

const odfNamespaces = `xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
	`xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" ` +
	`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" ` +
	`xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0" ` +
	`xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" ` +
	`xmlns:svg="urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0" ` +
	`xmlns:presentation="urn:oasis:names:tc:opendocument:xmlns:presentation:1.0" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" ` +
	`xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0"`

const odpManifestXML = `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
<manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="` + odpMimeType + `"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
<manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
<manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>
</manifest:manifest>`

// Pages are 28cm x 21cm.
const odpStylesXML = `<office:document-styles ` + odfNamespaces + ` office:version="1.2">
<office:styles>
<style:style style:name="Default-title" style:family="presentation"><style:graphic-properties draw:stroke="none" draw:fill="none"/><style:paragraph-properties fo:text-align="center"/><style:text-properties fo:font-size="40pt"/></style:style>
<style:style style:name="Default-subtitle" style:family="presentation"><style:graphic-properties draw:stroke="none" draw:fill="none"/><style:paragraph-properties fo:text-align="center"/><style:text-properties fo:font-size="28pt"/></style:style>
<style:style style:name="Default-outline1" style:family="presentation"><style:graphic-properties draw:stroke="none" draw:fill="none"/><style:text-properties fo:font-size="28pt"/></style:style>
</office:styles>
<office:automatic-styles>
<style:page-layout style:name="PM1"><style:page-layout-properties fo:margin-top="0cm" fo:margin-bottom="0cm" fo:margin-left="0cm" fo:margin-right="0cm" fo:page-width="28cm" fo:page-height="21cm" style:print-orientation="landscape"/></style:page-layout>
</office:automatic-styles>
<office:master-styles>
<style:master-page style:name="Default" style:page-layout-name="PM1"/>
</office:master-styles>
</office:document-styles>`

var odpMetaTmpl = mustTemplate("odpMeta", `<office:document-meta `+odfNamespaces+` office:version="1.2">
<office:meta>
<meta:generator>merkdown</meta:generator>
<dc:title>{{ xml .Title }}</dc:title>
{{- if .Creator }}
<meta:initial-creator>{{ xml .Creator }}</meta:initial-creator>
<dc:creator>{{ xml .Creator }}</dc:creator>
{{- end }}
</office:meta>
</office:document-meta>`)

var odpContentTmpl = mustTemplate("odpContent", `<office:document-content `+odfNamespaces+` office:version="1.2">
<office:body>
<office:presentation>
{{- range $i, $c := .Charts }}
<draw:page draw:name="page{{ add $i 1 }}" draw:master-page-name="Default">
{{- if $c.IsOutline }}
<draw:frame presentation:style-name="Default-title" presentation:class="title" svg:x="1.4cm" svg:y="0.8cm" svg:width="25.2cm" svg:height="3.5cm"><draw:text-box><text:p>{{ xml $c.Title }}</text:p></draw:text-box></draw:frame>
<draw:frame presentation:style-name="Default-outline1" presentation:class="outline" svg:x="1.4cm" svg:y="4.8cm" svg:width="25.2cm" svg:height="13.5cm"><draw:text-box>{{ outlineXML $c.Outline }}</draw:text-box></draw:frame>
{{- else }}
<draw:frame presentation:style-name="Default-title" presentation:class="title" svg:x="1.4cm" svg:y="{{ if $c.Subtitle }}5cm{{ else }}8.5cm{{ end }}" svg:width="25.2cm" svg:height="4cm"><draw:text-box><text:p>{{ xml $c.Title }}</text:p></draw:text-box></draw:frame>
{{- if $c.Subtitle }}
<draw:frame presentation:style-name="Default-subtitle" presentation:class="subtitle" svg:x="1.4cm" svg:y="10cm" svg:width="25.2cm" svg:height="5cm"><draw:text-box><text:p>{{ xml $c.Subtitle }}</text:p></draw:text-box></draw:frame>
{{- end }}
{{- end }}
</draw:page>
{{- end }}
</office:presentation>
</office:body>
</office:document-content>`)

func (d *ODPDocument) parts() ([]packagePart, error) {
	content, err := execute(odpContentTmpl, d)
	if err != nil {
		return nil, err
	}
	meta, err := execute(odpMetaTmpl, d)
	if err != nil {
		return nil, err
	}
	return []packagePart{
		{name: "META-INF/manifest.xml", data: []byte(xmlDeclaration + odpManifestXML)},
		{name: "content.xml", data: content},
		{name: "styles.xml", data: []byte(xmlDeclaration + odpStylesXML)},
		{name: "meta.xml", data: meta},
	}, nil
}
