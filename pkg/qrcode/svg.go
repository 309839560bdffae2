package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
)

// SVG writes the artifact as a standalone SVG document. Gradients become
// definitions referenced by id and the background is a rect whose corner
// radius comes from BackgroundOptions.Round.
func (a *Artifact) SVG() ([]byte, error) {
	var defs, body strings.Builder

	for _, ly := range a.layers() {
		paint, opacity, err := svgPaint(&defs, ly)
		if err != nil {
			return nil, fmt.Errorf("paint %s: %w", ly.name, err)
		}
		if paint == "none" {
			continue
		}

		attrs := fmt.Sprintf(`fill="%s"`, paint)
		if opacity < 1 {
			attrs += fmt.Sprintf(` fill-opacity="%.3f"`, opacity)
		}

		if ly.background {
			fmt.Fprintf(&body, `<rect x="0" y="0" width="%d" height="%d"`, a.opts.Width, a.opts.Height)
			if ly.radius > 0 {
				fmt.Fprintf(&body, ` rx="%.2f" ry="%.2f"`, ly.radius, ly.radius)
			}
			fmt.Fprintf(&body, " %s/>\n", attrs)
			continue
		}

		var p svgPath
		ly.draw(&p)
		if p.empty() {
			continue
		}
		if ly.evenOdd {
			attrs = `fill-rule="evenodd" ` + attrs
		}
		fmt.Fprintf(&body, "<path d=\"%s\" %s/>\n", p.String(), attrs)
	}

	if a.logo != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, a.logo.img); err != nil {
			return nil, fmt.Errorf("encode logo: %w", err)
		}
		fmt.Fprintf(&body, `<image x="%.0f" y="%.0f" width="%.0f" height="%.0f" href="data:image/png;base64,%s"/>`+"\n",
			a.logo.box.x, a.logo.box.y, a.logo.box.w, a.logo.box.h, base64.StdEncoding.EncodeToString(buf.Bytes()))
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		a.opts.Width, a.opts.Height, a.opts.Width, a.opts.Height)
	if defs.Len() > 0 {
		fmt.Fprintf(&out, "<defs>\n%s</defs>\n", defs.String())
	}
	out.WriteString(body.String())
	out.WriteString("</svg>\n")
	return out.Bytes(), nil
}

// svgPaint returns the fill value of a layer, writing a gradient definition
// into defs when the layer has one.
func svgPaint(defs *strings.Builder, ly layer) (string, float64, error) {
	if ly.fill.gradient == nil {
		c, err := ParseColor(ly.fill.color)
		if err != nil {
			return "", 0, err
		}
		paint, opacity := svgColor(c)
		return paint, opacity, nil
	}

	stops, err := resolveStops(ly.fill.gradient)
	if err != nil {
		return "", 0, err
	}

	id := ly.name + "-color"
	line := resolveGradient(ly.fill.gradient, ly.area, ly.rotation)
	if line.radial {
		fmt.Fprintf(defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" fx="%.2f" fy="%.2f" r="%.2f">`+"\n",
			id, line.cx, line.cy, line.cx, line.cy, line.r)
	} else {
		fmt.Fprintf(defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`+"\n",
			id, line.x0, line.y0, line.x1, line.y1)
	}
	for _, s := range stops {
		hex, opacity := svgColor(s.color)
		if hex == "none" {
			hex = "#000000"
		}
		fmt.Fprintf(defs, `  <stop offset="%.3f" stop-color="%s"`, s.offset, hex)
		if opacity < 1 {
			fmt.Fprintf(defs, ` stop-opacity="%.3f"`, opacity)
		}
		defs.WriteString("/>\n")
	}
	if line.radial {
		defs.WriteString("</radialGradient>\n")
	} else {
		defs.WriteString("</linearGradient>\n")
	}
	return fmt.Sprintf("url(#%s)", id), 1, nil
}
