//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

// BaselineSources are the curl sources, relative to the lib directory,
// compiled regardless of the install flags. The list follows curl's own
// minimal build without the optional authentication and TLS backends.
var BaselineSources = []string{
	"asyn-thread.c",
	"altsvc.c",
	"base64.c",
	"bufq.c",
	"bufref.c",
	"cfilters.c",
	"cf-h1-proxy.c",
	"cf-haproxy.c",
	"cf-https-connect.c",
	"cf-socket.c",
	"conncache.c",
	"connect.c",
	"content_encoding.c",
	"cookie.c",
	"curl_addrinfo.c",
	"curl_get_line.c",
	"curl_memrchr.c",
	"curl_range.c",
	"curl_sha512_256.c",
	"curl_threads.c",
	"curl_trc.c",
	"cw-out.c",
	"doh.c",
	"dynbuf.c",
	"dynhds.c",
	"easy.c",
	"escape.c",
	"file.c",
	"fileinfo.c",
	"fopen.c",
	"formdata.c",
	"getenv.c",
	"getinfo.c",
	"hash.c",
	"headers.c",
	"hmac.c",
	"hostasyn.c",
	"hostip.c",
	"hostip6.c",
	"hsts.c",
	"http.c",
	"http1.c",
	"http_aws_sigv4.c",
	"http_chunks.c",
	"http_digest.c",
	"http_proxy.c",
	"idn.c",
	"if2ip.c",
	"inet_ntop.c",
	"inet_pton.c",
	"llist.c",
	"md5.c",
	"mime.c",
	"macos.c",
	"mprintf.c",
	"mqtt.c",
	"multi.c",
	"netrc.c",
	"nonblock.c",
	"noproxy.c",
	"parsedate.c",
	"progress.c",
	"rand.c",
	"rename.c",
	"request.c",
	"select.c",
	"sendf.c",
	"setopt.c",
	"sha256.c",
	"share.c",
	"slist.c",
	"socks.c",
	"socketpair.c",
	"speedcheck.c",
	"splay.c",
	"strcase.c",
	"strdup.c",
	"strerror.c",
	"strparse.c",
	"strtok.c",
	"strtoofft.c",
	"timeval.c",
	"transfer.c",
	"url.c",
	"urlapi.c",
	"version.c",
	"vauth/digest.c",
	"vauth/vauth.c",
	"vquic/curl_msh3.c",
	"vquic/curl_ngtcp2.c",
	"vquic/curl_osslq.c",
	"vquic/curl_quiche.c",
	"vquic/vquic.c",
	"vquic/vquic-tls.c",
	"vtls/hostcheck.c",
	"vtls/keylog.c",
	"vtls/vtls.c",
	"vtls/vtls_scache.c",
	"warnless.c",
	"timediff.c",
	"ws.c",
}

// NTLMSources are added with the NTLM flag.
var NTLMSources = []string{
	"curl_des.c",
	"curl_endian.c",
	"curl_gethostname.c",
	"curl_ntlm_core.c",
	"http_ntlm.c",
	"md4.c",
	"vauth/ntlm.c",
	"vauth/ntlm_sspi.c",
}

// SPNEGOSources are added with the SPNEGO flag. vauth/vauth.c is also part
// of BaselineSources, the duplicate is kept so that the list matches the one
// of previous releases.
var SPNEGOSources = []string{
	"http_negotiate.c",
	"vauth/vauth.c",
}
