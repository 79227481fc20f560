package watch

// indexHTML swaps in each SVG pushed on /events.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tsdeps watch</title>
<style>
  body { margin: 0; font-family: sans-serif; background: #fafafa; }
  #status { position: fixed; top: 8px; right: 12px; font-size: 12px; color: #888; }
  #graph { padding: 16px; }
  #graph svg { max-width: 100%; height: auto; }
</style>
</head>
<body>
<div id="status">connecting</div>
<div id="graph"></div>
<script>
  const status = document.getElementById("status");
  const container = document.getElementById("graph");
  const events = new EventSource("/events");
  events.addEventListener("graph", (e) => {
    container.innerHTML = e.data;
    status.textContent = "updated " + new Date().toLocaleTimeString();
  });
  events.onerror = () => { status.textContent = "disconnected"; };
</script>
</body>
</html>
`
