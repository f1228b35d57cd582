package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/arm-controller/internal/mqtt"
	"github.com/sweeney/arm-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"poseOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"deg": func(v float64) string {
		return fmt.Sprintf("%.1f°", v)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Arm Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.down { color: green; font-weight: bold; }
.up { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Arm Controller{{if .Config.WSBroker}}<span id="live-dot" class="live-dot pending" title="connecting"></span>{{end}}</h1>

<h2>Arm</h2>
<table>
{{$pose := poseOrUnknown (printf "%s" .Pose)}}
<tr><th>Pen</th><td id="pose" class="{{if eq $pose "DOWN"}}down{{else if eq $pose "UP"}}up{{else}}unknown{{end}}">{{$pose}}</td></tr>
<tr><th>X</th><td id="x">{{pct .X}}</td></tr>
<tr><th>Y</th><td id="y">{{pct .Y}}</td></tr>
<tr><th>Shoulder</th><td>{{deg .Angles.Shoulder}}</td></tr>
<tr><th>Elbow</th><td>{{deg .Angles.Elbow}}</td></tr>
<tr><th>Wrist</th><td>{{deg .Angles.Wrist}}</td></tr>
<tr><th>Ready</th><td>{{if .Baselined}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Events</h2>
<table>
<tr><th>Pen down</th><td>{{.Counts.PoseDown}}</td></tr>
<tr><th>Pen up</th><td>{{.Counts.PoseUp}}</td></tr>
<tr><th>Toggles</th><td>{{.Flips}}</td></tr>
</table>

<h2>Health</h2>
<table>
<tr><th>Analog refreshes</th><td>{{.Axes.Refreshes}}</td></tr>
<tr><th>Clamped samples</th><td>{{.Axes.Clamped}}</td></tr>
<tr><th>Read errors</th><td>{{.Axes.ReadErrors}}</td></tr>
<tr><th>Servo writes</th><td>{{.Driver.Writes}}</td></tr>
<tr><th>Clamped angles</th><td>{{.Driver.Clamped}}</td></tr>
<tr><th>Write errors</th><td>{{.Driver.WriteErrors}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Smoothing</th><td>{{.Config.Smoothing}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
{{if .Config.WSBroker}}
<script src="https://unpkg.com/mqtt/dist/mqtt.min.js"></script>
<script>
(function() {
  var broker = "{{.Config.WSBroker}}";
  var topic = "{{.Topic}}";
  var dot = document.getElementById("live-dot");
  var poseEl = document.getElementById("pose");
  var xEl = document.getElementById("x");
  var yEl = document.getElementById("y");

  function setPose(pose) {
    poseEl.textContent = pose;
    poseEl.className = pose === "DOWN" ? "down" : pose === "UP" ? "up" : "unknown";
  }

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  var client = mqtt.connect(broker, { reconnectPeriod: 5000 });

  client.on("connect", function() {
    setDot("ok", "live");
    client.subscribe(topic);
  });

  client.on("reconnect", function() {
    setDot("pending", "reconnecting");
  });

  client.on("offline", function() {
    setDot("err", "offline");
  });

  client.on("error", function() {
    setDot("err", "error");
  });

  client.on("message", function(t, payload) {
    try {
      var msg = JSON.parse(payload.toString());
      if (msg.arm) {
        setPose(msg.arm.pose);
        xEl.textContent = (msg.arm.x * 100).toFixed(1) + "%";
        yEl.textContent = (msg.arm.y * 100).toFixed(1) + "%";
      }
    } catch (e) {}
  });
})();
</script>
{{end}}
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Topic  string
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Topic:    mqtt.Topic,
	}
	return indexTmpl.Execute(w, data)
}
