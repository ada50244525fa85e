package html

// CSRFFormScript injects a hidden _csrf field into every POST form on the
// page from the CSRF cookie. The tab pages are full of small forms (add
// forms, per-row save/cancel/delete, confirm-modal answers) so the token is
// attached client side instead of being threaded through every view.
func CSRFFormScript() string {
	return `<script>
(function () {
  function readCookie(name) {
    var prefix = name + "=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var part = parts[i].trim();
      if (part.indexOf(prefix) === 0) return decodeURIComponent(part.substring(prefix.length));
    }
    return "";
  }

  function attachTokens() {
    var token = readCookie("X-CSRF-Token");
    if (!token) return;

    var forms = document.querySelectorAll("form");
    for (var i = 0; i < forms.length; i++) {
      var form = forms[i];
      if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") continue;
      if (form.querySelector("input[name='_csrf']")) continue;

      var input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      input.value = token;
      form.appendChild(input);
    }
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", attachTokens);
  } else {
    attachTokens();
  }
})();
</script>`
}
