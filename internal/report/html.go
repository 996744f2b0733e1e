package report

import (
	"encoding/json"
	"io"
	"text/template"
)

// RenderHTML writes a self-contained force-graph page embedding the D3
// document. The page loads d3 from a CDN and needs no server.
func RenderHTML(w io.Writer, title string, doc *D3Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return htmlTemplate.Execute(w, map[string]any{
		"Title": title,
		"Data":  string(payload),
	})
}

var htmlTemplate = template.Must(template.New("visualizer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dependency Graph: {{.Title}}</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
<style>
  body { margin: 0; font: 12px/1.4 -apple-system, "Segoe UI", sans-serif; }
  #legend { position: fixed; top: 10px; left: 10px; background: rgba(255,255,255,.9);
            padding: 8px 12px; border: 1px solid #ccc; border-radius: 4px; }
  #legend span { display: inline-block; width: 10px; height: 10px; margin-right: 4px;
                 border-radius: 50%; }
  .link { stroke-opacity: .6; }
  text { pointer-events: none; fill: #333; }
</style>
</head>
<body>
<div id="legend"></div>
<svg></svg>
<script>
const graph = {{.Data}};
const groupNames = ["other", "ts/tsx", "js/jsx", "css/scss", "components", "pages/views", "utils/helpers"];
const color = d3.scaleOrdinal(d3.schemeCategory10);
const linkColor = v => v === 3 ? "#d62728" : v === 2 ? "#ff7f0e" : "#999";

const legend = d3.select("#legend");
groupNames.forEach((name, i) => {
  legend.append("div").html('<span style="background:' + color(i) + '"></span>' + name);
});

const width = window.innerWidth, height = window.innerHeight;
const svg = d3.select("svg").attr("width", width).attr("height", height);

const simulation = d3.forceSimulation(graph.nodes)
  .force("link", d3.forceLink(graph.links).id(d => d.id).distance(60))
  .force("charge", d3.forceManyBody().strength(-120))
  .force("center", d3.forceCenter(width / 2, height / 2));

const link = svg.append("g").selectAll("line")
  .data(graph.links).join("line")
  .attr("class", "link")
  .attr("stroke", d => linkColor(d.value))
  .attr("stroke-width", d => d.value === 3 ? 2 : 1);

const node = svg.append("g").selectAll("circle")
  .data(graph.nodes).join("circle")
  .attr("r", 5)
  .attr("fill", d => color(d.group))
  .call(d3.drag()
    .on("start", (event, d) => { if (!event.active) simulation.alphaTarget(.3).restart(); d.fx = d.x; d.fy = d.y; })
    .on("drag", (event, d) => { d.fx = event.x; d.fy = event.y; })
    .on("end", (event, d) => { if (!event.active) simulation.alphaTarget(0); d.fx = null; d.fy = null; }));

node.append("title").text(d => d.id);

const label = svg.append("g").selectAll("text")
  .data(graph.nodes).join("text")
  .attr("dx", 8).attr("dy", 3)
  .text(d => d.id.split("/").pop());

simulation.on("tick", () => {
  link.attr("x1", d => d.source.x).attr("y1", d => d.source.y)
      .attr("x2", d => d.target.x).attr("y2", d => d.target.y);
  node.attr("cx", d => d.x).attr("cy", d => d.y);
  label.attr("x", d => d.x).attr("y", d => d.y);
});
</script>
</body>
</html>
`))
